package http

import (
	"context"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/generated/servers"
	"freight/internal/metrics"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handler contracts the server depends on. The application layer's command
// and query handlers satisfy them.
type (
	CreateAmendmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateAmendmentCommand) (amendment.Snapshot, error)
	}
	AdminDecideHandler interface {
		Handle(ctx context.Context, cmd commands.AdminDecideCommand) (amendment.Snapshot, error)
	}
	VendorRespondHandler interface {
		Handle(ctx context.Context, cmd commands.VendorRespondCommand) (amendment.Snapshot, error)
	}
	ListAmendmentsHandler interface {
		Handle(ctx context.Context, q queries.ListAmendmentsQuery) (queries.ListAmendmentsQueryResponse, error)
	}
	GetAmendmentHandler interface {
		Handle(ctx context.Context, q queries.GetAmendmentQuery) (amendment.Snapshot, error)
	}
	GetAmendmentHistoryHandler interface {
		Handle(ctx context.Context, q queries.GetAmendmentHistoryQuery) ([]amendment.HistoryEntry, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It turns requests into commands and queries and renders their results.
type Server struct {
	// Command handlers
	createAmendmentHandler CreateAmendmentHandler
	adminDecideHandler     AdminDecideHandler
	vendorRespondHandler   VendorRespondHandler

	// Query handlers
	listAmendmentsHandler      ListAmendmentsHandler
	getAmendmentHandler        GetAmendmentHandler
	getAmendmentHistoryHandler GetAmendmentHistoryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createAmendmentHandler CreateAmendmentHandler,
	adminDecideHandler AdminDecideHandler,
	vendorRespondHandler VendorRespondHandler,
	listAmendmentsHandler ListAmendmentsHandler,
	getAmendmentHandler GetAmendmentHandler,
	getAmendmentHistoryHandler GetAmendmentHistoryHandler,
) *Server {
	return &Server{
		createAmendmentHandler:     createAmendmentHandler,
		adminDecideHandler:         adminDecideHandler,
		vendorRespondHandler:       vendorRespondHandler,
		listAmendmentsHandler:      listAmendmentsHandler,
		getAmendmentHandler:        getAmendmentHandler,
		getAmendmentHistoryHandler: getAmendmentHistoryHandler,
	}
}

// CreateAmendment handles POST /api/v1/shipments/{shipmentId}/amendments.
func (s *Server) CreateAmendment(ctx echo.Context, shipmentId servers.ShipmentId) error {
	const op = "create_amendment"
	start := time.Now()

	who, err := ActorFrom(ctx.Request().Context())
	if err != nil {
		return fail(op, start, err)
	}

	var body servers.NewAmendment
	if err = bindAndValidate(ctx, &body); err != nil {
		return fail(op, start, err)
	}

	shipmentID, err := kernel.UUIDFromBytes(shipmentId[:])
	if err != nil {
		return fail(op, start, errs.NewValueIsInvalidErrorWithCause("shipmentId", err))
	}

	cmd, err := commands.NewCreateAmendmentCommand(who, kernel.NewUUID(), shipmentID, body.Reason)
	if err != nil {
		return fail(op, start, err)
	}

	snap, err := s.createAmendmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(op, start, err)
	}

	return ok(ctx, op, start, http.StatusCreated, toAmendment(snap))
}

// ListAmendments handles GET /api/v1/amendments.
func (s *Server) ListAmendments(ctx echo.Context, params servers.ListAmendmentsParams) error {
	const op = "list_amendments"
	start := time.Now()

	who, err := ActorFrom(ctx.Request().Context())
	if err != nil {
		return fail(op, start, err)
	}

	var (
		status        string
		pending       bool
		limit, offset int
	)
	if params.Status != nil {
		status = string(*params.Status)
	}
	if params.Pending != nil {
		pending = *params.Pending
	}
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewListAmendmentsQuery(who, status, pending, limit, offset)
	if err != nil {
		return fail(op, start, err)
	}

	page, err := s.listAmendmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(op, start, err)
	}

	items := make([]servers.Amendment, len(page.Items))
	for i, snap := range page.Items {
		items[i] = toAmendment(snap)
	}

	return ok(ctx, op, start, http.StatusOK, servers.AmendmentPage{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetAmendment handles GET /api/v1/amendments/{amendmentId}.
func (s *Server) GetAmendment(ctx echo.Context, amendmentId servers.AmendmentId) error {
	const op = "get_amendment"
	start := time.Now()

	who, err := ActorFrom(ctx.Request().Context())
	if err != nil {
		return fail(op, start, err)
	}

	id, err := kernel.UUIDFromBytes(amendmentId[:])
	if err != nil {
		return fail(op, start, errs.NewValueIsInvalidErrorWithCause("amendmentId", err))
	}

	query, err := queries.NewGetAmendmentQuery(who, id)
	if err != nil {
		return fail(op, start, err)
	}

	snap, err := s.getAmendmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(op, start, err)
	}

	return ok(ctx, op, start, http.StatusOK, toAmendment(snap))
}

// GetAmendmentHistory handles GET /api/v1/amendments/{amendmentId}/history.
func (s *Server) GetAmendmentHistory(ctx echo.Context, amendmentId servers.AmendmentId) error {
	const op = "get_amendment_history"
	start := time.Now()

	who, err := ActorFrom(ctx.Request().Context())
	if err != nil {
		return fail(op, start, err)
	}

	id, err := kernel.UUIDFromBytes(amendmentId[:])
	if err != nil {
		return fail(op, start, errs.NewValueIsInvalidErrorWithCause("amendmentId", err))
	}

	query, err := queries.NewGetAmendmentHistoryQuery(who, id)
	if err != nil {
		return fail(op, start, err)
	}

	entries, err := s.getAmendmentHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(op, start, err)
	}

	response := make([]servers.HistoryEntry, len(entries))
	for i, e := range entries {
		response[i] = toHistoryEntry(e)
	}

	return ok(ctx, op, start, http.StatusOK, response)
}

// DecideAmendment handles POST /api/v1/amendments/{amendmentId}/admin-decision.
func (s *Server) DecideAmendment(ctx echo.Context, amendmentId servers.AmendmentId) error {
	const op = "admin_decide"
	start := time.Now()

	who, err := ActorFrom(ctx.Request().Context())
	if err != nil {
		return fail(op, start, err)
	}

	var body servers.AdminDecision
	if err = bindAndValidate(ctx, &body); err != nil {
		return fail(op, start, err)
	}

	id, err := kernel.UUIDFromBytes(amendmentId[:])
	if err != nil {
		return fail(op, start, errs.NewValueIsInvalidErrorWithCause("amendmentId", err))
	}

	action, err := amendment.AdminActionFromString(string(body.Action))
	if err != nil {
		return fail(op, start, err)
	}

	cmd, err := commands.NewAdminDecideCommand(who, id, action)
	if err != nil {
		return fail(op, start, err)
	}

	snap, err := s.adminDecideHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(op, start, err)
	}

	return ok(ctx, op, start, http.StatusOK, toAmendment(snap))
}

// RespondToAmendment handles POST /api/v1/amendments/{amendmentId}/vendor-response.
func (s *Server) RespondToAmendment(ctx echo.Context, amendmentId servers.AmendmentId) error {
	const op = "vendor_respond"
	start := time.Now()

	who, err := ActorFrom(ctx.Request().Context())
	if err != nil {
		return fail(op, start, err)
	}

	var body servers.VendorResponse
	if err = bindAndValidate(ctx, &body); err != nil {
		return fail(op, start, err)
	}

	id, err := kernel.UUIDFromBytes(amendmentId[:])
	if err != nil {
		return fail(op, start, errs.NewValueIsInvalidErrorWithCause("amendmentId", err))
	}

	action, err := amendment.VendorActionFromString(string(body.Response))
	if err != nil {
		return fail(op, start, err)
	}

	var extraCost *kernel.Money
	if body.ExtraCost != nil {
		m, moneyErr := kernel.MoneyFromString(*body.ExtraCost)
		if moneyErr != nil {
			return fail(op, start, moneyErr)
		}
		extraCost = &m
	}

	var note string
	if body.Reason != nil {
		note = *body.Reason
	}

	cmd, err := commands.NewVendorRespondCommand(who, id, action, extraCost, body.DelayDays, note)
	if err != nil {
		return fail(op, start, err)
	}

	snap, err := s.vendorRespondHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(op, start, err)
	}

	return ok(ctx, op, start, http.StatusOK, toAmendment(snap))
}

func bindAndValidate(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return ctx.Validate(body)
}

func ok(ctx echo.Context, op string, start time.Time, status int, body any) error {
	metrics.RecordOperation(op, "ok", time.Since(start))
	return ctx.JSON(status, body)
}

// fail records the outcome and hands err to the HTTPErrorHandler.
func fail(op string, start time.Time, err error) error {
	metrics.RecordOperation(op, string(errs.KindOf(err)), time.Since(start))
	return err
}

func toAmendment(s amendment.Snapshot) servers.Amendment {
	out := servers.Amendment{
		Id:            s.ID.Bytes(),
		ShipmentId:    s.ShipmentID.Bytes(),
		RequestedBy:   s.RequestedBy.Bytes(),
		Reason:        s.Reason,
		Status:        servers.AmendmentStatus(s.Status.String()),
		DelayDays:     s.DelayDays,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		VendorReplyAt: s.VendorReplyAt,
	}
	if s.ExtraCost != nil {
		cost := s.ExtraCost.String()
		out.ExtraCost = &cost
	}
	if s.VendorReason != "" {
		reason := s.VendorReason
		out.VendorReason = &reason
	}
	return out
}

func toHistoryEntry(e amendment.HistoryEntry) servers.HistoryEntry {
	out := servers.HistoryEntry{
		Id:        e.ID.Bytes(),
		ToStatus:  e.To.String(),
		Action:    e.Action.String(),
		ActorId:   e.ActorID.Bytes(),
		ActorRole: e.ActorRole.String(),
		At:        e.At,
	}
	if e.From != amendment.Unknown {
		from := e.From.String()
		out.FromStatus = &from
	}
	if e.Note != "" {
		note := e.Note
		out.Note = &note
	}
	return out
}
