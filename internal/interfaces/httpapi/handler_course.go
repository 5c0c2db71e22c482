package httpapi

import (
	"net/http"
	"strings"

	"github.com/birdielabs/caddie-api/internal/domain/course"
)

type teeDTO struct {
	Name       string  `json:"name"`
	Color      string  `json:"color,omitempty"`
	ColorHex   string  `json:"color_hex,omitempty"`
	TotalYards int     `json:"total_yards"`
	Rating     float64 `json:"rating,omitempty"`
	Slope      int     `json:"slope,omitempty"`
}

type holeDTO struct {
	Number int `json:"number"`
	Par    int `json:"par"`
	Yards  int `json:"yards"`
}

type courseDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Tees      []teeDTO  `json:"tees,omitempty"`
	Holes     []holeDTO `json:"holes,omitempty"`
}

func (h *Handler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchCourses")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := h.courseService.SearchCourses(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "search courses failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]courseDTO, 0, len(items))
	for _, item := range items {
		out = append(out, courseToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCourse")
	defer span.End()

	courseID := strings.TrimSpace(r.PathValue("courseID"))
	item, err := h.courseService.GetCourse(ctx, courseID)
	if err != nil {
		h.logger.WarnContext(ctx, "get course failed", "course_id", courseID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, courseToDTO(item))
}

func courseToDTO(item course.Course) courseDTO {
	out := courseDTO{
		ID:        item.ID,
		Name:      item.Name,
		City:      item.City,
		State:     item.State,
		Latitude:  item.Latitude,
		Longitude: item.Longitude,
	}
	for _, tee := range item.Tees {
		out.Tees = append(out.Tees, teeDTO{
			Name:       tee.Name,
			Color:      tee.Color,
			ColorHex:   course.TeeColorHex(tee.Color),
			TotalYards: tee.TotalYards,
			Rating:     tee.Rating,
			Slope:      tee.Slope,
		})
	}
	for _, hole := range item.Holes {
		out.Holes = append(out.Holes, holeDTO{
			Number: hole.Number,
			Par:    hole.Par,
			Yards:  hole.Yards,
		})
	}
	return out
}
