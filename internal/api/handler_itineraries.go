package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tour-planner-backend/internal/itinerary"
	"tour-planner-backend/internal/parse"
	"tour-planner-backend/internal/store"
)

// timeLabel is the 12-hour format shown next to each stop.
const timeLabel = "03:04 PM"

// Minutes accepts either a JSON number (60) or a duration string ("1h30m", "90 min").
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := parse.Minutes(s)
		if err != nil {
			return err
		}
		*m = Minutes(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("minutes must be a whole number or a duration string: %w", err)
	}
	*m = Minutes(n)
	return nil
}

// TripRequest holds the settings shared by every itinerary request. End
// defaults to Start, DailyStart and BufferMinutes to the planner config.
// Budget is in AED and, when given, at least 50.
type TripRequest struct {
	Start         string   `json:"start" binding:"required"`
	End           string   `json:"end"`
	DailyStart    string   `json:"daily_start"`
	BufferMinutes *int     `json:"buffer_minutes"`
	Budget        *float64 `json:"budget" binding:"omitempty,gte=50"`
}

// VisitRequest names a catalog place and the time to spend there.
type VisitRequest struct {
	Place   string  `json:"place" binding:"required"`
	Minutes Minutes `json:"minutes"`
}

// ItineraryRequest is the body of POST /api/itineraries.
type ItineraryRequest struct {
	TripRequest
	Visits []VisitRequest `json:"visits" binding:"dive"`
}

// SurpriseRequest is the body of POST /api/itineraries/surprise.
type SurpriseRequest struct {
	TripRequest
	Count    int     `json:"count"`
	Seed     *uint64 `json:"seed"`
	Category string  `json:"category"`
}

// ReconfirmRequest is the body of POST /api/itineraries/reconfirm.
type ReconfirmRequest struct {
	ItineraryRequest
	Minutes map[string]Minutes `json:"minutes"`
}

// EntryResponse is one scheduled stop.
type EntryResponse struct {
	Place       string    `json:"place"`
	Description string    `json:"description"`
	Minutes     int       `json:"minutes"`
	Arrive      time.Time `json:"arrive"`
	Depart      time.Time `json:"depart"`
	ArriveLabel string    `json:"arrive_label"`
	DepartLabel string    `json:"depart_label"`
}

// DayResponse groups the stops of one date.
type DayResponse struct {
	Date    string          `json:"date"`
	Entries []EntryResponse `json:"entries"`
}

// ItineraryResponse is returned by every itinerary endpoint.
type ItineraryResponse struct {
	Days          []DayResponse     `json:"days"`
	BufferMinutes int               `json:"buffer_minutes"`
	RouteURL      string            `json:"route_url"`
	Reasons       map[string]string `json:"reasons"`
	Budget        *float64          `json:"budget,omitempty"`
}

// CreateItinerary handles POST /api/itineraries.
func (h *Handler) CreateItinerary(c *gin.Context) {
	var req ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visits, err := h.resolveVisits(c, req.Visits)
	if err != nil {
		respondError(c, err)
		return
	}
	sched, err := h.build(req.TripRequest, visits)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.respond(sched, visits, req.Budget))
}

// SurpriseItinerary handles POST /api/itineraries/surprise.
func (h *Handler) SurpriseItinerary(c *gin.Context) {
	var req SurpriseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count == 0 {
		req.Count = min(3, h.cfg.Planner.MaxPlaces)
	}
	if req.Count < 1 || req.Count > h.cfg.Planner.MaxPlaces {
		respondError(c, fmt.Errorf("%w: count %d, want 1 to %d", itinerary.ErrPlaceCount, req.Count, h.cfg.Planner.MaxPlaces))
		return
	}

	places, err := h.store.ListPlaces(c.Request.Context(), store.Filter{City: h.cfg.Planner.City, Category: req.Category})
	if err != nil {
		respondError(c, err)
		return
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewPCG(*req.Seed, *req.Seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	visits, err := itinerary.Surprise(rng, store.AsPlaces(places), req.Count, h.cfg.Planner.SurpriseDurations)
	if err != nil {
		respondError(c, err)
		return
	}

	sched, err := h.build(req.TripRequest, visits)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.respond(sched, visits, req.Budget))
}

// ReconfirmItinerary handles POST /api/itineraries/reconfirm. The visits are
// scheduled as usual and then the durations in Minutes replace the original
// ones without moving any place to another day.
func (h *Handler) ReconfirmItinerary(c *gin.Context) {
	var req ReconfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visits, err := h.resolveVisits(c, req.Visits)
	if err != nil {
		respondError(c, err)
		return
	}
	sched, err := h.build(req.TripRequest, visits)
	if err != nil {
		respondError(c, err)
		return
	}

	limits := h.limits()
	minutes := make(map[string]int, len(req.Minutes))
	for name, m := range req.Minutes {
		if err := limits.CheckMinutes(name, int(m)); err != nil {
			respondError(c, err)
			return
		}
		minutes[name] = int(m)
	}
	confirmed, err := sched.Reconfirm(minutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.respond(confirmed, visits, req.Budget))
}

func (h *Handler) limits() itinerary.Limits {
	p := h.cfg.Planner
	return itinerary.Limits{MinMinutes: p.MinMinutes, MaxMinutes: p.MaxMinutes, MinPlaces: 1, MaxPlaces: p.MaxPlaces}
}

// resolveVisits looks the requested places up in the catalog and checks
// the form limits. Unknown names are reported together.
func (h *Handler) resolveVisits(c *gin.Context, reqs []VisitRequest) ([]itinerary.Visit, error) {
	names := make([]string, len(reqs))
	for i, r := range reqs {
		names[i] = r.Place
	}
	found, err := h.store.FindPlaces(c.Request.Context(), h.cfg.Planner.City, names)
	if err != nil {
		return nil, err
	}

	var missing []string
	visits := make([]itinerary.Visit, 0, len(reqs))
	for _, r := range reqs {
		p, ok := found[r.Place]
		if !ok {
			missing = append(missing, r.Place)
			continue
		}
		visits = append(visits, itinerary.Visit{Place: store.AsPlace(p), Minutes: int(r.Minutes)})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: unknown places: %s", errBadInput, strings.Join(missing, ", "))
	}
	if err := h.limits().Check(visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// build turns the trip settings into a Request in the planner's time zone.
func (h *Handler) build(trip TripRequest, visits []itinerary.Visit) (*itinerary.Schedule, error) {
	loc := h.cfg.Planner.Location()

	start, err := parse.Date(trip.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %w", errBadInput, err)
	}
	end := start
	if trip.End != "" {
		if end, err = parse.Date(trip.End, loc); err != nil {
			return nil, fmt.Errorf("%w: end: %w", errBadInput, err)
		}
	}
	if maxDays := h.cfg.Planner.MaxTripDays; maxDays > 0 && itinerary.TripDays(start, end) > maxDays {
		return nil, fmt.Errorf("%w: trips are limited to %d days", errBadInput, maxDays)
	}

	dailyStart := trip.DailyStart
	if dailyStart == "" {
		dailyStart = h.cfg.Planner.DailyStart
	}
	clock, err := parse.Clock(dailyStart)
	if err != nil {
		return nil, fmt.Errorf("%w: daily_start: %w", errBadInput, err)
	}

	buffer := h.cfg.Planner.BufferMinutes
	if trip.BufferMinutes != nil {
		buffer = *trip.BufferMinutes
	}

	return itinerary.Build(itinerary.Request{
		Visits:        visits,
		Start:         start,
		End:           end,
		DailyStart:    clock,
		BufferMinutes: buffer,
	})
}

// respond renders a schedule. The route and reasons follow the order in
// which the places were chosen.
func (h *Handler) respond(sched *itinerary.Schedule, visits []itinerary.Visit, budget *float64) ItineraryResponse {
	resp := ItineraryResponse{
		Days:          make([]DayResponse, len(sched.Days)),
		BufferMinutes: sched.BufferMinutes,
		RouteURL:      itinerary.RouteURL(itinerary.Names(visits), h.cfg.Planner.Locality),
		Reasons:       make(map[string]string, len(visits)),
		Budget:        budget,
	}
	for i, day := range sched.Days {
		entries := make([]EntryResponse, len(day.Entries))
		for j, e := range day.Entries {
			entries[j] = EntryResponse{
				Place:       e.Place.Name,
				Description: e.Place.Description,
				Minutes:     e.Minutes,
				Arrive:      e.Arrive,
				Depart:      e.Depart,
				ArriveLabel: e.Arrive.Format(timeLabel),
				DepartLabel: e.Depart.Format(timeLabel),
			}
		}
		resp.Days[i] = DayResponse{Date: day.Date.Format(time.DateOnly), Entries: entries}
	}
	for _, v := range visits {
		resp.Reasons[v.Place.Name] = v.Place.Description
	}
	return resp
}
