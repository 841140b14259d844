package match

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/crease/internal/common"
	"github.com/DhavalSuthar-24/crease/internal/dls"
	"github.com/DhavalSuthar-24/crease/internal/innings"
	"github.com/DhavalSuthar-24/crease/internal/livesync"
	"github.com/DhavalSuthar-24/crease/internal/metrics"
	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/mvp"
	"github.com/DhavalSuthar-24/crease/internal/scorecard"
	"github.com/DhavalSuthar-24/crease/pkg/logger"
	"github.com/DhavalSuthar-24/crease/pkg/responses"
	"github.com/DhavalSuthar-24/crease/pkg/token"
)

// flushTimeout bounds how long closing or handing off a match waits for
// pending snapshot writes.
const flushTimeout = 5 * time.Second

// ControllerConfig carries the settings handlers need.
type ControllerConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	Weights     mvp.Weights
}

// MatchController handles match-related HTTP requests
type MatchController struct {
	repo     MatchRepository
	sessions *SessionManager
	feed     LiveFeed
	cfg      ControllerConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewMatchController creates a new match controller. feed may be nil when
// the live feed is disabled.
func NewMatchController(repo MatchRepository, sessions *SessionManager, feed LiveFeed, cfg ControllerConfig, log *logger.Logger) *MatchController {
	return &MatchController{
		repo:     repo,
		sessions: sessions,
		feed:     feed,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// --- Helpers ---

func (mc *MatchController) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMatchNotFound):
		responses.NotFound(c, "Match")
	case errors.Is(err, ErrMatchClosed):
		responses.SendError(c, http.StatusGone, err.Error())
	case errors.Is(err, ErrNotPinned):
		responses.Forbidden(c, err.Error())
	default:
		mc.log.ForMatch(c.Param("id")).WithError(err).Error("load match session")
		responses.InternalServerError(c, "Failed to load match")
	}
}

// scorerSession loads the session for :id and checks the caller's device
// holds it.
func (mc *MatchController) scorerSession(c *gin.Context) (*Session, bool) {
	deviceID, err := common.GetDeviceIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil, false
	}
	s, err := mc.sessions.Authorize(c.Request.Context(), c.Param("id"), deviceID)
	if err != nil {
		mc.sessionError(c, err)
		return nil, false
	}
	return s, true
}

func (mc *MatchController) viewOf(s *Session, m *innings.Machine) MatchView {
	state := m.State()
	st := s.sync.Status()
	return MatchView{
		MatchID:    s.matchID,
		Title:      s.title,
		Status:     StatusFor(state),
		State:      state,
		Sync:       &st,
		CanUndo:    m.CanUndo(),
		Progress:   innings.ProgressOf(state),
		Result:     innings.ResultOf(state),
		Scorecards: scorecard.BuildAll(state),
	}
}

func recordView(rec *Match) MatchView {
	state := rec.State
	state.TransferCode = nil
	return MatchView{
		MatchID:    rec.MatchID,
		Title:      rec.Title,
		Status:     rec.Status,
		State:      state,
		Progress:   innings.ProgressOf(state),
		Result:     innings.ResultOf(state),
		Scorecards: scorecard.BuildAll(state),
	}
}

// mutate runs one scoring action for the pinned device. Validation errors
// answer 400; actions the current state ignores answer 409 with the
// unchanged view.
func (mc *MatchController) mutate(c *gin.Context, action string, fn func(m *innings.Machine) (bool, error)) {
	s, ok := mc.scorerSession(c)
	if !ok {
		return
	}
	var (
		applied bool
		err     error
		view    MatchView
	)
	s.Do(func(m *innings.Machine) {
		applied, err = fn(m)
		view = mc.viewOf(s, m)
	})
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if !applied {
		responses.SendConflict(c, action+" is not allowed in the current state", view)
		return
	}
	responses.SendSuccess(c, http.StatusOK, action, view)
}

func (mc *MatchController) grant(matchID, deviceID string) (string, error) {
	return token.GenerateScorerToken(matchID, deviceID, mc.cfg.TokenSecret, mc.cfg.TokenExpiry)
}

// --- Match setup and reads ---

// CreateMatch sets up a match and pins it to the calling device
// @Summary      Create a match
// @Description  Sets up rosters, toss and limits. Returns a scorer token for the creating device.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Param        match  body  CreateMatchRequest  true  "Match setup"
// @Success      201  {object}  responses.SuccessResponse{data=ScorerGrant}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	matchID := uuid.NewString()
	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	machine, err := innings.NewMatch(innings.Setup{
		MatchID:      matchID,
		TeamA:        req.TeamA.toTeam(),
		TeamB:        req.TeamB.toTeam(),
		TossWinner:   req.TossWinner,
		TossDecision: req.TossDecision,
		MaxOvers:     req.MaxOvers,
		MaxWickets:   req.MaxWickets,
	}, mc.sessions.Rules())
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	title := req.Title
	if title == "" {
		title = req.TeamA.Name + " vs " + req.TeamB.Name
	}
	rec := &Match{
		MatchID:  matchID,
		Title:    title,
		TeamA:    req.TeamA.Name,
		TeamB:    req.TeamB.Name,
		Status:   StatusLive,
		State:    machine.State(),
		DeviceID: deviceID,
	}
	if err := mc.repo.CreateMatch(c.Request.Context(), rec); err != nil {
		mc.log.WithError(err).Error("create match")
		responses.InternalServerError(c, "Failed to create match")
		return
	}

	tok, err := mc.grant(matchID, deviceID)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue scorer token")
		return
	}

	s := mc.sessions.Start(rec, machine)
	var view MatchView
	s.Do(func(m *innings.Machine) { view = mc.viewOf(s, m) })

	mc.log.ForMatch(matchID).WithField("device", deviceID).Info("match created")
	responses.SendSuccess(c, http.StatusCreated, "Match created", ScorerGrant{DeviceID: deviceID, Token: tok, Match: view})
}

// GetMatches lists matches, newest first
// @Summary      List matches
// @Tags         Matches
// @Produce      json
// @Param        status     query  string  false  "LIVE, INNINGS_BREAK, PAUSED, FINISHED or ABANDONED"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  responses.PaginatedResponse
// @Router       /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status = ?"] = status
	}

	matches, total, err := mc.repo.GetMatches(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch matches: "+err.Error())
		return
	}
	views := make([]MatchView, 0, len(matches))
	for i := range matches {
		views = append(views, recordView(&matches[i]))
	}
	responses.SendPaginated(c, views, page, pageSize, total)
}

// GetMatchByID returns the current state of a match
// @Summary      Get a match
// @Description  Live state when the match is being scored here, else the stored snapshot.
// @Tags         Matches
// @Produce      json
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	matchID := c.Param("id")
	if s, ok := mc.sessions.Peek(matchID); ok {
		var view MatchView
		s.Do(func(m *innings.Machine) { view = mc.viewOf(s, m) })
		view.State.TransferCode = nil
		responses.SendSuccess(c, http.StatusOK, "", view)
		return
	}

	rec, err := mc.repo.GetMatchByID(c.Request.Context(), matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match: "+err.Error())
		return
	}
	if rec == nil {
		responses.NotFound(c, "Match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", recordView(rec))
}

// GetSummary returns the read-only summary of a closed match
// @Summary      Finished match summary
// @Tags         Matches
// @Produce      json
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MatchSummary}
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /matches/{id}/summary [get]
func (mc *MatchController) GetSummary(c *gin.Context) {
	rec, err := mc.repo.GetMatchByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match: "+err.Error())
		return
	}
	if rec == nil {
		responses.NotFound(c, "Match")
		return
	}
	if !rec.Status.Terminal() {
		responses.SendError(c, http.StatusConflict, "Match is still in progress")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", rec.Summary())
}

// --- Scoring actions ---

// AddBall records one delivery
// @Summary      Record a delivery
// @Tags         Scoring
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id    path  string       true  "Match ID"
// @Param        ball  body  BallRequest  true  "Delivery"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/balls [post]
func (mc *MatchController) AddBall(c *gin.Context) {
	var req BallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordBall("invalid")
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "Ball recorded", func(m *innings.Machine) (bool, error) {
		applied, err := m.AddBall(req.toEvent())
		switch {
		case err != nil:
			metrics.RecordBall("invalid")
		case applied:
			metrics.RecordBall("applied")
		default:
			metrics.RecordBall("ignored")
		}
		return applied, err
	})
}

// SetStriker picks the opening striker
// @Summary      Set opening striker
// @Tags         Scoring
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id      path  string         true  "Match ID"
// @Param        player  body  PlayerRequest  true  "Batter"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/striker [post]
func (mc *MatchController) SetStriker(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "Striker set", func(m *innings.Machine) (bool, error) {
		return m.SetStriker(req.Name), nil
	})
}

// SetNonStriker picks the opening non-striker
// @Summary      Set opening non-striker
// @Tags         Scoring
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id      path  string         true  "Match ID"
// @Param        player  body  PlayerRequest  true  "Batter"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/non-striker [post]
func (mc *MatchController) SetNonStriker(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "Non-striker set", func(m *innings.Machine) (bool, error) {
		return m.SetNonStriker(req.Name), nil
	})
}

// NewBatter brings in the next batter after a wicket
// @Summary      Bring in a new batter
// @Tags         Scoring
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id      path  string            true  "Match ID"
// @Param        batter  body  NewBatterRequest  true  "Incoming batter"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/new-batter [post]
func (mc *MatchController) NewBatter(c *gin.Context) {
	var req NewBatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "New batter in", func(m *innings.Machine) (bool, error) {
		return m.ResolveWicket(req.Name, req.OnStrike), nil
	})
}

// SetBowler picks the bowler for the next over
// @Summary      Set bowler
// @Tags         Scoring
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id      path  string         true  "Match ID"
// @Param        player  body  PlayerRequest  true  "Bowler"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/bowler [post]
func (mc *MatchController) SetBowler(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "Bowler set", func(m *innings.Machine) (bool, error) {
		return m.SetBowler(req.Name), nil
	})
}

// ChangeBowler corrects the bowler of the current over
// @Summary      Correct the current bowler
// @Description  Moves this over's figures from the recorded bowler to the named one.
// @Tags         Scoring
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id      path  string         true  "Match ID"
// @Param        player  body  PlayerRequest  true  "Actual bowler"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/change-bowler [post]
func (mc *MatchController) ChangeBowler(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "Bowler changed", func(m *innings.Machine) (bool, error) {
		return m.ChangeBowler(req.Name), nil
	})
}

// SwapStriker exchanges striker and non-striker
// @Summary      Swap strike
// @Tags         Scoring
// @Produce      json
// @Security     ScorerToken
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/swap [post]
func (mc *MatchController) SwapStriker(c *gin.Context) {
	mc.mutate(c, "Strike swapped", func(m *innings.Machine) (bool, error) {
		return m.SwapStriker(), nil
	})
}

// Replacement substitutes a roster player during a break
// @Summary      Replace a player
// @Tags         Scoring
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id           path  string              true  "Match ID"
// @Param        replacement  body  ReplacementRequest  true  "Replacement"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/replacement [post]
func (mc *MatchController) Replacement(c *gin.Context) {
	var req ReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "Player replaced", func(m *innings.Machine) (bool, error) {
		return m.Replacement(req.Team, req.Out, req.In), nil
	})
}

// Undo reverts the last scoring action
// @Summary      Undo
// @Tags         Scoring
// @Produce      json
// @Security     ScorerToken
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/undo [post]
func (mc *MatchController) Undo(c *gin.Context) {
	mc.mutate(c, "Undone", func(m *innings.Machine) (bool, error) {
		return m.Undo(), nil
	})
}

// StartNextInnings begins the chase
// @Summary      Start the second innings
// @Tags         Scoring
// @Produce      json
// @Security     ScorerToken
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/next-innings [post]
func (mc *MatchController) StartNextInnings(c *gin.Context) {
	mc.mutate(c, "Second innings started", func(m *innings.Machine) (bool, error) {
		return m.StartNextInnings(), nil
	})
}

// GetAvailableBowlers lists who may bowl the next over
// @Summary      Bowler picker
// @Tags         Scoring
// @Produce      json
// @Security     ScorerToken
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=[]innings.BowlerOption}
// @Router       /matches/{id}/bowlers [get]
func (mc *MatchController) GetAvailableBowlers(c *gin.Context) {
	s, ok := mc.scorerSession(c)
	if !ok {
		return
	}
	var options []innings.BowlerOption
	s.Do(func(m *innings.Machine) { options = m.AvailableBowlers() })
	responses.SendSuccess(c, http.StatusOK, "", options)
}

// --- DLS ---

// GetDLSResources reports the chasing side's resources
// @Summary      DLS resources
// @Description  Resources left to the batting side now and, with revised_overs, the revised target for a shortened chase. The resource model is an approximation, not the official table.
// @Tags         DLS
// @Produce      json
// @Param        id             path   string  true   "Match ID"
// @Param        revised_overs  query  int     false  "Overs the chase is cut to"
// @Success      200  {object}  responses.SuccessResponse{data=DLSResourcesResponse}
// @Router       /matches/{id}/dls/resources [get]
func (mc *MatchController) GetDLSResources(c *gin.Context) {
	state, ok := mc.readState(c)
	if !ok {
		return
	}
	resp := DLSResourcesResponse{
		ResourcesRemaining: dls.ResourcesFromBalls(state.MaxOvers*scorecard.BallsPerOver-state.Balls, state.Wickets),
	}
	if raw := c.Query("revised_overs"); raw != "" {
		revised, err := strconv.Atoi(raw)
		if err != nil {
			responses.BadRequest(c, "revised_overs must be a number")
			return
		}
		chase, _, err := innings.DLSRevision(state, revised)
		switch {
		case errors.Is(err, innings.ErrNotChasing):
			responses.SendError(c, http.StatusConflict, "Revised targets apply to the second innings")
			return
		case err != nil:
			responses.BadRequest(c, "revised_overs must be between 1 and the overs left in the chase")
			return
		}
		resp.Chase = &chase
	}
	responses.SendSuccess(c, http.StatusOK, "", resp)
}

// ApplyDLS revises the chase target and length
// @Summary      Apply a DLS revision
// @Tags         DLS
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id   path  string      true  "Match ID"
// @Param        dls  body  DLSRequest  true  "Revision"
// @Success      200  {object}  responses.SuccessResponse{data=MatchView}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse{data=MatchView}
// @Router       /matches/{id}/dls [post]
func (mc *MatchController) ApplyDLS(c *gin.Context) {
	var req DLSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.mutate(c, "Target revised", func(m *innings.Machine) (bool, error) {
		target := 0
		if req.Target != nil {
			target = *req.Target
		} else if req.RevisedOvers == 0 && m.State().Innings == 2 {
			return false, innings.ErrInvalidOvers
		}
		return m.ApplyDLS(target, req.RevisedOvers)
	})
}

// --- MVP and closing ---

// readState returns the freshest state for :id: the open session if any,
// else the stored record.
func (mc *MatchController) readState(c *gin.Context) (models.MatchState, bool) {
	matchID := c.Param("id")
	if s, ok := mc.sessions.Peek(matchID); ok {
		var state models.MatchState
		s.Do(func(m *innings.Machine) { state = m.State() })
		return state, true
	}
	rec, err := mc.repo.GetMatchByID(c.Request.Context(), matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match: "+err.Error())
		return models.MatchState{}, false
	}
	if rec == nil {
		responses.NotFound(c, "Match")
		return models.MatchState{}, false
	}
	return rec.State, true
}

// GetMVP ranks players on the match so far
// @Summary      MVP ranking
// @Tags         Matches
// @Produce      json
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MVPResponse}
// @Router       /matches/{id}/mvp [get]
func (mc *MatchController) GetMVP(c *gin.Context) {
	state, ok := mc.readState(c)
	if !ok {
		return
	}
	ranked := mvp.RankMatch(state, mc.cfg.Weights)
	potm, _ := mvp.PlayerOfTheMatch(ranked)
	responses.SendSuccess(c, http.StatusOK, "", MVPResponse{Rankings: ranked, PlayerOfTheMatch: potm})
}

func (mc *MatchController) flush(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.sync.Flush(ctx); err != nil {
		mc.log.ForMatch(s.matchID).WithError(err).Warn("pending snapshot writes did not finish")
	}
}

func (mc *MatchController) complete(c *gin.Context, s *Session, done Completion) {
	mc.flush(s)
	if err := mc.repo.CompleteMatch(c.Request.Context(), s.matchID, done); err != nil {
		if errors.Is(err, ErrMatchClosed) {
			mc.sessions.Drop(s.matchID)
			responses.SendError(c, http.StatusGone, err.Error())
			return
		}
		mc.log.ForMatch(s.matchID).WithError(err).Error("close match")
		responses.InternalServerError(c, "Failed to close match")
		return
	}
	mc.sessions.Drop(s.matchID)

	rec, err := mc.repo.GetMatchByID(c.Request.Context(), s.matchID)
	if err != nil || rec == nil {
		responses.SendSuccess(c, http.StatusOK, "Match closed", nil)
		return
	}
	mc.log.ForMatch(s.matchID).WithField("status", done.Status).Info("match closed")
	responses.SendSuccess(c, http.StatusOK, "Match closed", rec.Summary())
}

// FinishMatch confirms the result and player of the match
// @Summary      Finish a match
// @Description  Allowed once the chase is over. Stores the result, MVP ranking and player of the match, then releases the scoring session.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     ScorerToken
// @Param        id      path  string         true   "Match ID"
// @Param        finish  body  FinishRequest  false  "Player of the match override"
// @Success      200  {object}  responses.SuccessResponse{data=MatchSummary}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /matches/{id}/finish [post]
func (mc *MatchController) FinishMatch(c *gin.Context) {
	var req FinishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationErrorResponse(c, err)
			return
		}
	}
	s, ok := mc.scorerSession(c)
	if !ok {
		return
	}

	var state models.MatchState
	s.Do(func(m *innings.Machine) { state = m.State() })
	result := innings.ResultOf(state)
	if !result.Decided {
		responses.SendError(c, http.StatusConflict, "Match cannot be finished before the chase is over")
		return
	}

	ranked := mvp.RankMatch(state, mc.cfg.Weights)
	potm := req.PlayerOfTheMatch
	if potm == "" {
		potm, _ = mvp.PlayerOfTheMatch(ranked)
	} else if !playedIn(state, potm) {
		responses.BadRequest(c, "Player of the match must be in one of the squads")
		return
	}

	state.TransferCode = nil
	mc.complete(c, s, Completion{
		Status:           StatusFinished,
		State:            state,
		ResultSummary:    result.Summary,
		PlayerOfTheMatch: potm,
		MVPRankings:      models.MVPRankings(ranked),
		At:               mc.now(),
	})
}

func playedIn(state models.MatchState, name string) bool {
	return slices.Contains(state.BattingTeam.Squad(), name) || slices.Contains(state.BowlingTeam.Squad(), name)
}

// AbandonMatch closes a match without a result
// @Summary      Abandon a match
// @Tags         Matches
// @Produce      json
// @Security     ScorerToken
// @Param        id   path  string  true  "Match ID"
// @Success      200  {object}  responses.SuccessResponse{data=MatchSummary}
// @Router       /matches/{id}/abandon [post]
func (mc *MatchController) AbandonMatch(c *gin.Context) {
	s, ok := mc.scorerSession(c)
	if !ok {
		return
	}
	var state models.MatchState
	s.Do(func(m *innings.Machine) { state = m.State() })
	state.TransferCode = nil
	mc.complete(c, s, Completion{
		Status:        StatusAbandoned,
		State:         state,
		ResultSummary: "match abandoned",
		At:            mc.now(),
	})
}

// --- Handoff ---

// CreateTransferCode issues a single-use handoff code
// @Summary      Issue a transfer code
// @Description  Six digits, valid for a limited time. Another device redeems it to take over scoring.
// @Tags         Handoff
// @Produce      json
// @Security     ScorerToken
// @Param        id   path  string  true  "Match ID"
// @Success      201  {object}  responses.SuccessResponse{data=TransferCodeResponse}
// @Router       /matches/{id}/transfer [post]
func (mc *MatchController) CreateTransferCode(c *gin.Context) {
	s, ok := mc.scorerSession(c)
	if !ok {
		return
	}
	tc, err := s.sync.GenerateTransferCode(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrMatchClosed) {
			responses.SendError(c, http.StatusGone, err.Error())
			return
		}
		mc.log.ForMatch(s.matchID).WithError(err).Error("issue transfer code")
		responses.InternalServerError(c, "Failed to issue transfer code")
		return
	}
	s.Do(func(m *innings.Machine) { m.SetTransferCode(&tc) })
	responses.SendSuccess(c, http.StatusCreated, "Transfer code issued", TransferCodeResponse{
		Code:      tc.Code,
		ExpiresAt: tc.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// ClaimTransfer redeems a handoff code for the calling device
// @Summary      Redeem a transfer code
// @Tags         Handoff
// @Accept       json
// @Produce      json
// @Param        claim  body  ClaimTransferRequest  true  "Code and device"
// @Success      200  {object}  responses.SuccessResponse{data=ScorerGrant}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      410  {object}  responses.ErrorResponse
// @Failure      429  {object}  responses.ErrorResponse
// @Router       /matches/transfer/claim [post]
func (mc *MatchController) ClaimTransfer(c *gin.Context) {
	var req ClaimTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordTransferClaim("invalid")
		responses.ValidationErrorResponse(c, err)
		return
	}
	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	ctx := c.Request.Context()

	// Let the current holder's pending writes land before the snapshot is
	// handed over.
	title := ""
	if rec, err := mc.repo.GetMatchByTransferCode(ctx, req.Code); err == nil && rec != nil {
		title = rec.Title
		if err := mc.sessions.Flush(ctx, rec.MatchID); err != nil {
			mc.log.ForMatch(rec.MatchID).WithError(err).Warn("flush before handoff")
		}
	}

	claim, err := livesync.Redeem(ctx, mc.repo, req.Code, deviceID, mc.now())
	if err != nil {
		switch {
		case errors.Is(err, livesync.ErrInvalidTransferCode):
			metrics.RecordTransferClaim("invalid")
			mc.log.WithField("device", deviceID).Info("transfer claim rejected: invalid code")
			responses.BadRequest(c, err.Error())
		case errors.Is(err, livesync.ErrTransferCodeExpired):
			metrics.RecordTransferClaim("expired")
			mc.log.WithField("device", deviceID).Info("transfer claim rejected: code expired")
			responses.SendError(c, http.StatusGone, err.Error())
		default:
			metrics.RecordTransferClaim("error")
			mc.log.WithError(err).Error("transfer claim")
			responses.InternalServerError(c, "Failed to redeem transfer code")
		}
		return
	}
	metrics.RecordTransferClaim("ok")

	tok, err := mc.grant(claim.MatchID, deviceID)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue scorer token")
		return
	}
	s := mc.sessions.Repin(claim, title)
	var view MatchView
	s.Do(func(m *innings.Machine) { view = mc.viewOf(s, m) })
	responses.SendSuccess(c, http.StatusOK, "Scoring authority transferred", ScorerGrant{DeviceID: deviceID, Token: tok, Match: view})
}
