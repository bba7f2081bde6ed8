package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/flipbook"
	"github.com/jackzampolin/scrapbook/internal/pages"
	"github.com/jackzampolin/scrapbook/internal/scene"
	"github.com/jackzampolin/scrapbook/internal/svcctx"
)

// ListPagesResponse is the response for listing pages.
type ListPagesResponse struct {
	Pages      []pages.Descriptor `json:"pages"`
	TotalCount int                `json:"total_count"`
}

// ListPagesEndpoint handles GET /api/pages.
type ListPagesEndpoint struct{}

var _ api.Endpoint = (*ListPagesEndpoint)(nil)

func (e *ListPagesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages", e.handler
}

func (e *ListPagesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List pages
//	@Description	The page descriptors in reading order
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	ListPagesResponse
//	@Router			/api/pages [get]
func (e *ListPagesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	list := svcctx.PagesFrom(r.Context())
	if list == nil {
		list = []pages.Descriptor{}
	}
	writeJSON(w, http.StatusOK, ListPagesResponse{Pages: list, TotalCount: len(list)})
}

func (e *ListPagesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListPagesResponse
			if err := client.Get(cmd.Context(), "/api/pages", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			for i, p := range resp.Pages {
				front := p.FrontSide()
				fmt.Printf("%2d  %-10s  %s\n", i, p.Variant, front.Title)
			}
			return nil
		},
	}
}

// PageResponse is a page descriptor together with its closed-book pose.
type PageResponse struct {
	Page pages.Descriptor `json:"page"`
	Pose scene.PagePose   `json:"pose"`
}

// GetPageEndpoint handles GET /api/pages/{index}.
type GetPageEndpoint struct{}

var _ api.Endpoint = (*GetPageEndpoint)(nil)

func (e *GetPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages/{index}", e.handler
}

func (e *GetPageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a page
//	@Description	A single page with its scene pose in the unflipped state
//	@Tags			pages
//	@Produce		json
//	@Param			index	path		int	true	"Page index"
//	@Success		200		{object}	PageResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/pages/{index} [get]
func (e *GetPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page index must be an integer")
		return
	}

	list := svcctx.PagesFrom(r.Context())
	if index < 0 || index >= len(list) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("page %d not found", index))
		return
	}

	writeJSON(w, http.StatusOK, PageResponse{
		Page: list[index],
		Pose: scene.Pose(flipbook.Page{
			Index:   index,
			Variant: list[index].Variant,
			Spec:    list[index],
		}),
	})
}

func (e *GetPageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <index>",
		Short: "Get a page and its pose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid page index %q", args[0])
			}
			client := api.NewClient(getServerURL())
			var resp PageResponse
			if err := client.Get(cmd.Context(), "/api/pages/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SceneEndpoint handles GET /api/scene.
type SceneEndpoint struct{}

var _ api.Endpoint = (*SceneEndpoint)(nil)

func (e *SceneEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/scene", e.handler
}

func (e *SceneEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Initial scene
//	@Description	Every page pose with the book closed, plus the static props around it
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	scene.Scene
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/scene [get]
func (e *SceneEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	book, err := flipbook.New(svcctx.PagesFrom(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scene.Compose(book.Snapshot()))
}

func (e *SceneEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "scene",
		Short: "Get the initial scene layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp scene.Scene
			if err := client.Get(cmd.Context(), "/api/scene", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
