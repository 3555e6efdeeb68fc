package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"reminderkeeper/internal/application"
	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/pkg/response"
	"reminderkeeper/pkg/validation"
)

// pageTimeFormat is how reminder times are rendered in tables.
const pageTimeFormat = "2006-01-02 03:04 PM"

// form inputs arrive from <input type="datetime-local">; the API takes RFC3339.
var reminderTimeLayouts = []string{"2006-01-02T15:04", time.RFC3339}

func parseReminderTime(s string) (time.Time, bool) {
	for _, layout := range reminderTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type ReminderHandler struct {
	Svc    *application.ReminderService
	Logger *logrus.Logger
}

func NewReminderHandler(svc *application.ReminderService, logger *logrus.Logger) *ReminderHandler {
	return &ReminderHandler{Svc: svc, Logger: logger}
}

type reminderView struct {
	ID           string
	Title        string
	Description  string
	Email        string
	Sent         bool
	StartTime    string
	ReminderTime string
}

func toReminderView(rm *entity.Reminder) reminderView {
	return reminderView{
		ID:           rm.ID,
		Title:        rm.Title,
		Description:  rm.Description,
		Email:        rm.Email,
		Sent:         rm.Sent,
		StartTime:    rm.StartTime.Format(pageTimeFormat),
		ReminderTime: rm.ReminderTime.Format(pageTimeFormat),
	}
}

func toReminderViews(rms []*entity.Reminder) []reminderView {
	out := make([]reminderView, 0, len(rms))
	for _, rm := range rms {
		out = append(out, toReminderView(rm))
	}
	return out
}

type reminderForm struct {
	Title        string `form:"title" binding:"required"`
	Description  string `form:"description" binding:"required"`
	ReminderTime string `form:"reminderTime" binding:"required"`
	Email        string `form:"email" binding:"required,email"`
}

// Index GET /
func (h *ReminderHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Home", "User": c.GetString("userName")})
}

// Create POST /set-reminder
func (h *ReminderHandler) Create(c *gin.Context) {
	var form reminderForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", gin.H{"Title": "Home", "User": c.GetString("userName"), "Error": "Title, description, a valid email and a valid date are required."})
		return
	}
	at, ok := parseReminderTime(form.ReminderTime)
	if !ok {
		c.HTML(http.StatusBadRequest, "index.html", gin.H{"Title": "Home", "User": c.GetString("userName"), "Error": "Must be a valid date"})
		return
	}
	_, err := h.Svc.Create(c.Request.Context(), application.ReminderInput{
		Title:        form.Title,
		Description:  form.Description,
		ReminderTime: at,
		Email:        form.Email,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create reminder failed")
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"Title": "Home", "User": c.GetString("userName"), "Error": "Error setting reminder"})
		return
	}
	c.Redirect(http.StatusFound, "/schedule")
}

// Schedule GET /schedule
func (h *ReminderHandler) Schedule(c *gin.Context) {
	rms, err := h.Svc.List()
	if err != nil {
		h.Logger.WithError(err).Error("list reminders failed")
		c.HTML(http.StatusInternalServerError, "schedule.html", gin.H{"Title": "Schedule", "Error": "Error fetching schedule"})
		return
	}
	c.HTML(http.StatusOK, "schedule.html", gin.H{
		"Title": "Schedule",
		"User":  c.GetString("userName"),
		"Data":  toReminderViews(rms),
	})
}

// Event GET /events/:id
func (h *ReminderHandler) Event(c *gin.Context) {
	rm, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Event not found!")
		return
	}
	c.HTML(http.StatusOK, "event.html", gin.H{
		"Title": rm.Title,
		"User":  c.GetString("userName"),
		"Data":  toReminderView(rm),
	})
}

// Update POST /update/:id
func (h *ReminderHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var form reminderForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form data")
		return
	}
	at, ok := parseReminderTime(form.ReminderTime)
	if !ok {
		c.String(http.StatusBadRequest, "Must be a valid date")
		return
	}
	_, err := h.Svc.Update(c.Request.Context(), id, application.ReminderInput{
		Title:        form.Title,
		Description:  form.Description,
		ReminderTime: at,
		Email:        form.Email,
	})
	if err != nil {
		c.String(http.StatusNotFound, "Event not found!")
		return
	}
	c.Redirect(http.StatusFound, "/events/"+id)
}

// Delete GET /delete/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.String(http.StatusNotFound, "Event not found!")
		return
	}
	c.Redirect(http.StatusFound, "/schedule")
}

// Search POST /search
func (h *ReminderHandler) Search(c *gin.Context) {
	term := c.PostForm("searchTerm")
	rms, err := h.Svc.Search(c.Request.Context(), term)
	if err != nil {
		h.Logger.WithError(err).Error("search reminders failed")
		c.HTML(http.StatusInternalServerError, "search.html", gin.H{"Title": "Search", "Error": "Error searching events"})
		return
	}
	data := gin.H{
		"Title": "Search",
		"User":  c.GetString("userName"),
		"Term":  term,
		"Data":  toReminderViews(rms),
	}
	if len(rms) == 0 {
		data["Error"] = "No events found for the search term."
	}
	c.HTML(http.StatusOK, "search.html", data)
}

type apiReminderRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	ReminderTime string `json:"reminder_time" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
}

// APIList GET /api/reminders
func (h *ReminderHandler) APIList(c *gin.Context) {
	rms, err := h.Svc.List()
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list reminders", nil)
		return
	}
	response.Success(c, http.StatusOK, rms, "reminders", map[string]any{"count": len(rms)})
}

// APICreate POST /api/reminders
func (h *ReminderHandler) APICreate(c *gin.Context) {
	var req apiReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	at, ok := parseReminderTime(req.ReminderTime)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"reminder_time": "must be a valid datetime"})
		return
	}
	rm, err := h.Svc.Create(c.Request.Context(), application.ReminderInput{
		Title:        req.Title,
		Description:  req.Description,
		ReminderTime: at,
		Email:        req.Email,
	})
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to create reminder", nil)
		return
	}
	response.Success(c, http.StatusCreated, rm, "reminder created", nil)
}

// APIGet GET /api/reminders/:id
func (h *ReminderHandler) APIGet(c *gin.Context) {
	rm, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "reminder not found", nil)
		return
	}
	response.Success(c, http.StatusOK, rm, "reminder", nil)
}

// APIUpdate PUT /api/reminders/:id
func (h *ReminderHandler) APIUpdate(c *gin.Context) {
	var req apiReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	at, ok := parseReminderTime(req.ReminderTime)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"reminder_time": "must be a valid datetime"})
		return
	}
	rm, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.ReminderInput{
		Title:        req.Title,
		Description:  req.Description,
		ReminderTime: at,
		Email:        req.Email,
	})
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "reminder not found", nil)
		return
	}
	response.Success(c, http.StatusOK, rm, "reminder updated", nil)
}

// APIDelete DELETE /api/reminders/:id
func (h *ReminderHandler) APIDelete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error[any](c, http.StatusNotFound, "reminder not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "reminder deleted", nil)
}

// APISearch GET /api/reminders/search?q=
func (h *ReminderHandler) APISearch(c *gin.Context) {
	rms, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, rms, "search results", map[string]any{"count": len(rms)})
}
