// Package interfaces is the HTTP boundary of the engine: gin handlers that
// bind requests, resolve the caller identity from headers supplied by the
// auth layer, invoke the services and map the error taxonomy to status codes.
package interfaces

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobmatch/domain"
	"jobmatch/service"
	"jobmatch/store"
)

// HTTPHandler bundles the services behind the REST surface.
type HTTPHandler struct {
	Store    store.Store
	Matches  *service.MatchService
	Exams    *service.ExamService
	Rankings *service.RankingService
	Chats    *service.ChatService
	Log      *zap.Logger
}

// NewHTTPHandler registers all routes on the router.
func NewHTTPHandler(router *gin.Engine, h *HTTPHandler) {
	if h.Log == nil {
		h.Log = zap.NewNop()
	}

	router.POST("/jobs", h.CreateJob)
	router.GET("/jobs/:id", h.GetJob)
	router.GET("/jobs/:id/ranking", h.RankCandidates)

	router.POST("/candidates", h.CreateCandidate)
	router.GET("/candidates/:id", h.GetCandidate)

	router.POST("/matches", h.CreateMatch)
	router.GET("/matches/:id", h.GetMatch)
	router.POST("/matches/:id/apply", h.Apply)
	router.POST("/matches/:id/status", h.UpdateStatus)
	router.POST("/matches/:id/exam", h.SubmitExam)
	router.POST("/matches/:id/chat", h.OpenChat)
	router.GET("/matches/:id/chat", h.GetChat)
}

// actor reads the caller identity set by the auth layer in front of us.
func actor(c *gin.Context) (domain.Actor, bool) {
	a := domain.Actor{
		ID:   c.GetHeader("X-Actor-ID"),
		Role: domain.Role(c.GetHeader("X-Actor-Role")),
	}
	if a.ID == "" || !a.Role.IsValid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid actor headers"})
		return domain.Actor{}, false
	}
	return a, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	var status int
	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case domain.IsInvalidTransition(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadySubmitted):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrQuotaExhausted):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrJobHasNoExam),
		errors.Is(err, domain.ErrJobClosed),
		errors.Is(err, domain.ErrChatUnavailable):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
		h.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type createJobRequest struct {
	Title          string             `json:"title" binding:"required"`
	Company        string             `json:"company" binding:"required"`
	Description    string             `json:"description"`
	RequiredSkills []string           `json:"required_skills" binding:"required"`
	Location       string             `json:"location"`
	WorkMode       domain.WorkMode    `json:"work_mode"`
	Level          domain.Level       `json:"level"`
	SalaryMin      *int64             `json:"salary_min"`
	SalaryMax      *int64             `json:"salary_max"`
	Source         domain.JobSource   `json:"source"`
	Exam           *domain.ExamConfig `json:"exam"`
}

func (h *HTTPHandler) CreateJob(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if a.Role != domain.RoleEmployer {
		c.JSON(http.StatusForbidden, gin.H{"error": "only hiring organizations may post jobs"})
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	job := &domain.JobPosting{
		ID:             uuid.New(),
		OrgID:          a.ID,
		Title:          req.Title,
		Company:        req.Company,
		Description:    req.Description,
		RequiredSkills: domain.StringSet(req.RequiredSkills).Normalize(),
		Location:       req.Location,
		WorkMode:       req.WorkMode,
		Level:          req.Level,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Status:         domain.JobStatusActive,
		Source:         req.Source,
		Exam:           req.Exam,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if job.WorkMode == "" {
		job.WorkMode = domain.WorkModeOnsite
	}
	if job.Source == "" {
		job.Source = domain.JobSourceInternal
	}

	if err := h.Store.CreateJob(c.Request.Context(), job); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *HTTPHandler) GetJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.Store.GetJob(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type createCandidateRequest struct {
	Name         string       `json:"name" binding:"required"`
	Email        string       `json:"email"`
	Skills       []string     `json:"skills" binding:"required"`
	Level        domain.Level `json:"level"`
	Location     string       `json:"location"`
	OpenToRemote bool         `json:"open_to_remote"`
	Links        []string     `json:"links"`
	Availability string       `json:"availability"`
	ResumeRef    string       `json:"resume_ref"`
}

func (h *HTTPHandler) CreateCandidate(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	cand := &domain.CandidateProfile{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Skills:       domain.StringSet(req.Skills).Normalize(),
		Level:        req.Level,
		Location:     req.Location,
		OpenToRemote: req.OpenToRemote,
		Links:        domain.StringSet(req.Links),
		Availability: req.Availability,
		ResumeRef:    req.ResumeRef,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Store.CreateCandidate(c.Request.Context(), cand); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cand)
}

func (h *HTTPHandler) GetCandidate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cand, err := h.Store.GetCandidate(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

type createMatchRequest struct {
	JobID          uuid.UUID `json:"job_id" binding:"required"`
	CandidateID    uuid.UUID `json:"candidate_id" binding:"required"`
	QuotaExhausted bool      `json:"quota_exhausted"`
}

func (h *HTTPHandler) CreateMatch(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.Matches.CreateMatch(c.Request.Context(), service.CreateMatchInput{
		JobID:          req.JobID,
		CandidateID:    req.CandidateID,
		QuotaExhausted: req.QuotaExhausted,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *HTTPHandler) GetMatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.Matches.GetMatch(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"match": m}
	if app, err := h.Matches.GetApplication(c.Request.Context(), id); err == nil {
		resp["application"] = app
	}
	c.JSON(http.StatusOK, resp)
}

type transitionRequest struct {
	ExpectedVersion int64 `json:"expected_version"`
}

func (h *HTTPHandler) Apply(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transitionRequest
	_ = c.ShouldBindJSON(&req) // body optional

	m, err := h.Matches.Transition(c.Request.Context(), service.TransitionInput{
		MatchID:         id,
		To:              domain.StatusApplied,
		Actor:           a,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type statusRequest struct {
	To              domain.MatchStatus `json:"to" binding:"required"`
	ExpectedVersion int64              `json:"expected_version"`
}

func (h *HTTPHandler) UpdateStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.Matches.Transition(c.Request.Context(), service.TransitionInput{
		MatchID:         id,
		To:              req.To,
		Actor:           a,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type submitExamRequest struct {
	Answers domain.AnswerSheet `json:"answers" binding:"required"`
}

func (h *HTTPHandler) SubmitExam(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	candidateID, err := uuid.Parse(a.ID)
	if err != nil || a.Role != domain.RoleCandidate {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the candidate may submit the exam"})
		return
	}

	var req submitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.Exams.SubmitExam(c.Request.Context(), service.SubmitExamInput{
		MatchID:     id,
		CandidateID: candidateID,
		Answers:     req.Answers,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (h *HTTPHandler) RankCandidates(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	includeRejected := c.Query("include_rejected") == "true"

	matches, err := h.Rankings.RankCandidates(c.Request.Context(), id, includeRejected)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": id, "matches": matches, "total": len(matches)})
}

func (h *HTTPHandler) OpenChat(c *gin.Context) {
	if _, ok := actor(c); !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	room, err := h.Chats.OpenChat(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *HTTPHandler) GetChat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.Matches.GetMatch(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"can_open": service.CanOpenChat(m)}
	if room, err := h.Chats.RoomForMatch(c.Request.Context(), id); err == nil {
		resp["room"] = room
	}
	c.JSON(http.StatusOK, resp)
}
