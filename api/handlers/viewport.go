// ABOUTME: Viewport handlers for the Huma API
// ABOUTME: Provides HTTP endpoints for navigation, positions, and visibility

package handlers

import (
	"context"
	"net/http"

	"docview-engine/api/dto/requests"
	"docview-engine/api/dto/responses"
	"docview-engine/core/domain"
	"docview-engine/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
)

// Engine interface defines the methods needed from the viewport coordinator
type Engine interface {
	ScrollToPage(pageNumber int, key domain.DocumentKey, source domain.Source, opts *domain.ScrollOptions) bool
	SaveScrollPosition(key domain.DocumentKey, offset float64)
	GetSavedScrollPosition(key domain.DocumentKey) (float64, bool)
	RestorePosition(key domain.DocumentKey) bool
	FindMostVisiblePage(threshold float64) (domain.VisibilityReport, bool)
	CurrentPage() (domain.DocumentKey, int, bool)
	HandleScrollEvent(offset float64)
}

// ViewportHandler handles viewport-related HTTP requests
type ViewportHandler struct {
	engine    Engine
	positions interfaces.ScrollPositionStore
}

// NewViewportHandler creates a new viewport handler
func NewViewportHandler(engine Engine, positions interfaces.ScrollPositionStore) *ViewportHandler {
	return &ViewportHandler{
		engine:    engine,
		positions: positions,
	}
}

// RegisterRoutes registers all viewport-related routes
func (h *ViewportHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "scrollToPage",
		Method:      http.MethodPost,
		Path:        "/documents/{key}/scroll-to-page",
		Summary:     "Scroll the shared viewport to a page",
		Description: "Programmatically scrolls the viewport to a page of the given document, with optional thumbnail highlight",
		Tags:        []string{"Navigation"},
	}, h.ScrollToPage)

	huma.Register(api, huma.Operation{
		OperationID: "getScrollPosition",
		Method:      http.MethodGet,
		Path:        "/documents/{key}/position",
		Summary:     "Get a document's saved scroll position",
		Tags:        []string{"Positions"},
	}, h.GetPosition)

	huma.Register(api, huma.Operation{
		OperationID: "saveScrollPosition",
		Method:      http.MethodPut,
		Path:        "/documents/{key}/position",
		Summary:     "Save a document's scroll position",
		Tags:        []string{"Positions"},
	}, h.SavePosition)

	huma.Register(api, huma.Operation{
		OperationID: "deleteScrollPosition",
		Method:      http.MethodDelete,
		Path:        "/documents/{key}/position",
		Summary:     "Delete a document's saved scroll position",
		Tags:        []string{"Positions"},
	}, h.DeletePosition)

	huma.Register(api, huma.Operation{
		OperationID: "restorePosition",
		Method:      http.MethodPost,
		Path:        "/documents/{key}/restore",
		Summary:     "Restore a document's saved scroll position",
		Description: "Scrolls the viewport back to the document's saved offset, if one exists",
		Tags:        []string{"Positions"},
	}, h.RestorePosition)

	huma.Register(api, huma.Operation{
		OperationID: "getMostVisiblePage",
		Method:      http.MethodGet,
		Path:        "/viewport/most-visible",
		Summary:     "Find the most visible page",
		Description: "Scores every candidate page in the viewport and returns the winner",
		Tags:        []string{"Visibility"},
	}, h.MostVisible)

	huma.Register(api, huma.Operation{
		OperationID: "getCurrentPage",
		Method:      http.MethodGet,
		Path:        "/viewport/current-page",
		Summary:     "Get the committed current page",
		Tags:        []string{"Visibility"},
	}, h.CurrentPage)

	huma.Register(api, huma.Operation{
		OperationID: "reportScrollEvent",
		Method:      http.MethodPost,
		Path:        "/viewport/scroll-events",
		Summary:     "Report a viewport scroll event",
		Description: "Feeds a raw scroll offset into the debounce pipeline",
		Tags:        []string{"Visibility"},
	}, h.ScrollEvent)
}

// ScrollToPageInput defines the input for the ScrollToPage operation
type ScrollToPageInput struct {
	Key  string `path:"key" doc:"Document key"`
	Body requests.ScrollToPageRequest
}

// ScrollToPageOutput defines the output for the ScrollToPage operation
type ScrollToPageOutput struct {
	Body responses.ScrollToPageResponse
}

// ScrollToPage handles POST /documents/{key}/scroll-to-page
func (h *ViewportHandler) ScrollToPage(ctx context.Context, input *ScrollToPageInput) (*ScrollToPageOutput, error) {
	// Apply defaults
	input.Body.ApplyDefaults()

	opts := domain.DefaultScrollOptions()
	opts.Behavior = domain.ScrollBehavior(input.Body.Behavior)
	opts.AlignToTop = input.Body.AlignToTop
	opts.HighlightThumbnail = *input.Body.HighlightThumbnail
	opts.ForceElementRefresh = input.Body.ForceElementRefresh

	success := h.engine.ScrollToPage(
		input.Body.PageNumber,
		domain.DocumentKey(input.Key),
		domain.Source(input.Body.Source),
		&opts,
	)

	return &ScrollToPageOutput{
		Body: responses.ScrollToPageResponse{
			Success:    success,
			Key:        input.Key,
			PageNumber: input.Body.PageNumber,
		},
	}, nil
}

// GetPositionInput defines the input for the GetPosition operation
type GetPositionInput struct {
	Key string `path:"key" doc:"Document key"`
}

// GetPositionOutput defines the output for the GetPosition operation
type GetPositionOutput struct {
	Body responses.PositionResponse
}

// GetPosition handles GET /documents/{key}/position
func (h *ViewportHandler) GetPosition(ctx context.Context, input *GetPositionInput) (*GetPositionOutput, error) {
	offset, found := h.engine.GetSavedScrollPosition(domain.DocumentKey(input.Key))
	if !found {
		return nil, huma.Error404NotFound("no saved position for document " + input.Key)
	}

	return &GetPositionOutput{
		Body: responses.PositionResponse{
			Key:    input.Key,
			Offset: offset,
		},
	}, nil
}

// SavePositionInput defines the input for the SavePosition operation
type SavePositionInput struct {
	Key  string `path:"key" doc:"Document key"`
	Body requests.SavePositionRequest
}

// SavePositionOutput defines the output for the SavePosition operation
type SavePositionOutput struct {
	Body responses.PositionResponse
}

// SavePosition handles PUT /documents/{key}/position
func (h *ViewportHandler) SavePosition(ctx context.Context, input *SavePositionInput) (*SavePositionOutput, error) {
	h.engine.SaveScrollPosition(domain.DocumentKey(input.Key), input.Body.Offset)

	// Read back the stored value so the response reflects clamping
	offset, _ := h.engine.GetSavedScrollPosition(domain.DocumentKey(input.Key))

	return &SavePositionOutput{
		Body: responses.PositionResponse{
			Key:    input.Key,
			Offset: offset,
		},
	}, nil
}

// DeletePositionInput defines the input for the DeletePosition operation
type DeletePositionInput struct {
	Key string `path:"key" doc:"Document key"`
}

// DeletePositionOutput defines the output for the DeletePosition operation
type DeletePositionOutput struct {
	Status int
}

// DeletePosition handles DELETE /documents/{key}/position
func (h *ViewportHandler) DeletePosition(ctx context.Context, input *DeletePositionInput) (*DeletePositionOutput, error) {
	if err := h.positions.Delete(ctx, domain.DocumentKey(input.Key)); err != nil {
		return nil, toHumaError(err)
	}

	return &DeletePositionOutput{Status: http.StatusNoContent}, nil
}

// RestorePositionInput defines the input for the RestorePosition operation
type RestorePositionInput struct {
	Key string `path:"key" doc:"Document key"`
}

// RestorePositionOutput defines the output for the RestorePosition operation
type RestorePositionOutput struct {
	Body responses.RestoreResponse
}

// RestorePosition handles POST /documents/{key}/restore
func (h *ViewportHandler) RestorePosition(ctx context.Context, input *RestorePositionInput) (*RestorePositionOutput, error) {
	restored := h.engine.RestorePosition(domain.DocumentKey(input.Key))

	return &RestorePositionOutput{
		Body: responses.RestoreResponse{
			Restored: restored,
			Key:      input.Key,
		},
	}, nil
}

// MostVisibleInput defines the input for the MostVisible operation
type MostVisibleInput struct {
	Threshold float64 `query:"threshold,omitempty" minimum:"0" maximum:"1" doc:"Minimum visibility ratio for a page to qualify"`
}

// MostVisibleOutput defines the output for the MostVisible operation
type MostVisibleOutput struct {
	Body responses.VisibilityResponse
}

// MostVisible handles GET /viewport/most-visible
func (h *ViewportHandler) MostVisible(ctx context.Context, input *MostVisibleInput) (*MostVisibleOutput, error) {
	report, found := h.engine.FindMostVisiblePage(input.Threshold)
	if !found {
		return nil, huma.Error404NotFound("no page meets the visibility threshold")
	}

	return &MostVisibleOutput{
		Body: responses.VisibilityResponse{
			Key:             string(report.Key),
			PageNumber:      report.PageNumber,
			VisibilityRatio: report.VisibilityRatio,
		},
	}, nil
}

// CurrentPageOutput defines the output for the CurrentPage operation
type CurrentPageOutput struct {
	Body responses.CurrentPageResponse
}

// CurrentPage handles GET /viewport/current-page
func (h *ViewportHandler) CurrentPage(ctx context.Context, input *struct{}) (*CurrentPageOutput, error) {
	key, page, known := h.engine.CurrentPage()

	return &CurrentPageOutput{
		Body: responses.CurrentPageResponse{
			Known:      known,
			Key:        string(key),
			PageNumber: page,
		},
	}, nil
}

// ScrollEventInput defines the input for the ScrollEvent operation
type ScrollEventInput struct {
	Body requests.ScrollEventRequest
}

// ScrollEventOutput defines the output for the ScrollEvent operation
type ScrollEventOutput struct {
	Status int
	Body   responses.ScrollEventResponse
}

// ScrollEvent handles POST /viewport/scroll-events
func (h *ViewportHandler) ScrollEvent(ctx context.Context, input *ScrollEventInput) (*ScrollEventOutput, error) {
	h.engine.HandleScrollEvent(input.Body.Offset)

	return &ScrollEventOutput{
		Status: http.StatusAccepted,
		Body:   responses.ScrollEventResponse{Accepted: true},
	}, nil
}
