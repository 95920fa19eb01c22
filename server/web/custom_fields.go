package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/topi314/cobot-tools/internal/omit"
	"github.com/topi314/cobot-tools/server/cobot"
)

// customFieldIDs maps the field names the widget may write to the provider
// side numeric IDs of this space. New writable fields get an entry here,
// everything else is rejected.
var customFieldIDs = map[string]int{
	"zugang_24_stunden":             25145,
	"nachsendeadresse":              25146,
	"firmenbezeichnung_briefkasten": 25147,
	"fix_desk":                      25148,
}

var errNoKnownFields = errors.New("request contains no known custom fields")

type customFieldsRequest struct {
	Zugang24Stunden              omit.Omit[bool]   `json:"zugang_24_stunden"`
	Nachsendeadresse             omit.Omit[string] `json:"nachsendeadresse"`
	FirmenbezeichnungBriefkasten omit.Omit[string] `json:"firmenbezeichnung_briefkasten"`
	FixDesk                      omit.Omit[bool]   `json:"fix_desk"`
}

// fieldUpdates translates the set fields into provider updates. Absent keys
// are skipped, explicitly zero values like false or "" are written.
func (r customFieldsRequest) fieldUpdates() []cobot.FieldUpdate {
	var updates []cobot.FieldUpdate

	add := func(name string, set bool, value string) {
		if !set {
			return
		}
		updates = append(updates, cobot.FieldUpdate{ID: customFieldIDs[name], Value: value})
	}

	add("zugang_24_stunden", r.Zugang24Stunden.OK, strconv.FormatBool(r.Zugang24Stunden.Value))
	add("nachsendeadresse", r.Nachsendeadresse.OK, r.Nachsendeadresse.Value)
	add("firmenbezeichnung_briefkasten", r.FirmenbezeichnungBriefkasten.OK, r.FirmenbezeichnungBriefkasten.Value)
	add("fix_desk", r.FixDesk.OK, strconv.FormatBool(r.FixDesk.Value))

	return updates
}

type customFieldsResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// UpdateCustomFields writes a subset of the known custom fields in one
// provider batch. Requests without a single known field are rejected before
// anything goes upstream.
func (h *handler) UpdateCustomFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	membershipID := r.PathValue("member_id")

	var rq customFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
		slog.ErrorContext(ctx, "Failed to decode custom fields request", slog.String("membership_id", membershipID), slog.Any("err", err))
		respondError(ctx, w, http.StatusBadRequest, err)
		return
	}

	updates := rq.fieldUpdates()
	if len(updates) == 0 {
		respondError(ctx, w, http.StatusBadRequest, errNoKnownFields)
		return
	}

	data, err := h.Cobot.UpdateCustomFields(ctx, membershipID, updates)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to update custom fields", slog.String("membership_id", membershipID), slog.Any("err", err))
		respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	slog.InfoContext(ctx, "Updated custom fields", slog.String("membership_id", membershipID), slog.Int("fields", len(updates)))
	respondJSON(ctx, w, http.StatusOK, customFieldsResponse{
		Success: true,
		Data:    data,
	})
}
