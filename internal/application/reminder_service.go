package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"reminderkeeper/internal/domain/entity"
	repo "reminderkeeper/internal/domain/repository"
)

var ErrReminderNotFound = errors.New("reminder not found")

// ReminderService owns reminder CRUD and search. Reminders are deliberately
// not tied to a user account: every authenticated user sees and edits the
// whole set, and the notification address is free text on the record.
type ReminderService struct {
	Repo    repo.ReminderRepository
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewReminderService(r repo.ReminderRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ReminderService {
	return &ReminderService{Repo: r, Logger: logger, ES: es, ESIndex: esIndex}
}

type ReminderInput struct {
	Title        string
	Description  string
	ReminderTime time.Time
	Email        string
}

func (s *ReminderService) Create(ctx context.Context, in ReminderInput) (*entity.Reminder, error) {
	rm := &entity.Reminder{
		Title:        in.Title,
		Description:  in.Description,
		StartTime:    time.Now(),
		ReminderTime: in.ReminderTime,
		Email:        in.Email,
		Sent:         false,
	}
	if err := s.Repo.Create(rm); err != nil {
		return nil, err
	}
	_ = s.indexReminder(ctx, rm)
	return rm, nil
}

func (s *ReminderService) Get(id string) (*entity.Reminder, error) {
	rm, err := s.Repo.GetByID(id)
	if err != nil || rm == nil {
		return nil, ErrReminderNotFound
	}
	return rm, nil
}

func (s *ReminderService) List() ([]*entity.Reminder, error) {
	return s.Repo.List()
}

func (s *ReminderService) Update(ctx context.Context, id string, in ReminderInput) (*entity.Reminder, error) {
	rm, err := s.Repo.GetByID(id)
	if err != nil || rm == nil {
		return nil, ErrReminderNotFound
	}
	rm.Title = in.Title
	rm.Description = in.Description
	rm.ReminderTime = in.ReminderTime
	rm.Email = in.Email
	if err := s.Repo.Update(rm); err != nil {
		return nil, err
	}
	_ = s.indexReminder(ctx, rm)
	return rm, nil
}

func (s *ReminderService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return ErrReminderNotFound
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// Search matches reminders by title or description. Uses Elasticsearch
// multi_match when configured, otherwise falls back to the SQL ILIKE scan.
func (s *ReminderService) Search(ctx context.Context, term string) ([]*entity.Reminder, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	if s.ES == nil || s.ESIndex == "" {
		return s.Repo.Search(term)
	}

	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  term,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": 50,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed, falling back to sql")
		}
		return s.Repo.Search(term)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*entity.Reminder, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		rm, err := s.Repo.GetByID(h.ID)
		if err != nil {
			continue // stale index entry
		}
		out = append(out, rm)
	}
	return out, nil
}

func (s *ReminderService) indexReminder(ctx context.Context, rm *entity.Reminder) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":            rm.ID,
		"title":         rm.Title,
		"description":   rm.Description,
		"reminder_time": rm.ReminderTime.Format(time.RFC3339Nano),
		"sent":          rm.Sent,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: rm.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("reminder_id", rm.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("reminder_id", rm.ID).Warn("es index response error")
	}
	return nil
}

func (s *ReminderService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("reminder_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
