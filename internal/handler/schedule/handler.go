package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/turnomed/scheduling-api/internal/handler"
	"github.com/turnomed/scheduling-api/internal/model"
	scheduleService "github.com/turnomed/scheduling-api/internal/service/schedule"
)

type Handler struct {
	service  *scheduleService.Service
	validate *validator.Validate
}

func NewHandler(service *scheduleService.Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctor := r.Group("/schedules/doctor/:doctorID")
	{
		doctor.POST("", h.CreateWeeklySchedule)
		doctor.GET("", h.GetWeeklySchedule)
		doctor.GET("/settings", h.GetSettings)
		doctor.PUT("/settings", h.UpdateSettings)
		doctor.POST("/exceptions", h.CreateException)
		doctor.GET("/exceptions", h.ListExceptions)
	}
	r.PUT("/schedules/schedule/:scheduleID", h.UpdateScheduleEntry)
	r.DELETE("/schedules/schedule/:scheduleID", h.DeleteScheduleEntry)
	r.DELETE("/schedules/exceptions/:exceptionID", h.DeleteException)
}

func (h *Handler) CreateWeeklySchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.CreateWeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entries, err := h.service.ReplaceWeeklySchedule(c.Request.Context(), doctorID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entries))
}

func (h *Handler) GetWeeklySchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	schedule, err := h.service.GetWeeklySchedule(c.Request.Context(), doctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(schedule))
}

func (h *Handler) UpdateScheduleEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	var req model.UpdateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entry, err := h.service.UpdateScheduleEntry(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entry))
}

func (h *Handler) DeleteScheduleEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	if err := h.service.DeleteScheduleEntry(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSettings(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	settings, err := h.service.GetSettings(c.Request.Context(), doctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(settings))
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.UpdateDoctorSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), doctorID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(settings))
}

func (h *Handler) CreateException(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	exception, err := h.service.CreateException(c.Request.Context(), doctorID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(exception))
}

func (h *Handler) ListExceptions(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var from, to *model.Date
	if s := c.Query("start_date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start_date"))
			return
		}
		from = &d
	}
	if s := c.Query("end_date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end_date"))
			return
		}
		to = &d
	}

	exceptions, err := h.service.ListExceptions(c.Request.Context(), doctorID, from, to)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(exceptions))
}

func (h *Handler) DeleteException(c *gin.Context) {
	id, err := uuid.Parse(c.Param("exceptionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid exception ID"))
		return
	}

	if err := h.service.DeleteException(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
