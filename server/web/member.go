package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/topi314/cobot-tools/server/cobot"
)

// bookingWindowDays is how far the booking lookups reach into the past and
// the future.
const bookingWindowDays = 30

type memberResponse struct {
	Success   bool          `json:"success"`
	Data      *MemberBundle `json:"data"`
	FetchedAt time.Time     `json:"fetchedAt"`
}

// Member assembles the display bundle for a single membership. The profile
// fetch is essential, everything else degrades to empty defaults.
func (h *handler) Member(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	membershipID := r.PathValue("member_id")

	now := h.now()
	bundle, err := h.memberBundle(ctx, membershipID, now)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to assemble member bundle", slog.String("membership_id", membershipID), slog.Any("err", err))
		respondError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, memberResponse{
		Success:   true,
		Data:      bundle,
		FetchedAt: now,
	})
}

func (h *handler) memberBundle(ctx context.Context, membershipID string, now time.Time) (*MemberBundle, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		membership     *cobot.Membership
		customFields   []cobot.CustomField
		invoices       []cobot.Invoice
		pastBookings   []cobot.Booking
		futureBookings []cobot.Booking
	)

	g.Go(func() error {
		var err error
		if membership, err = h.Cobot.GetMembership(ctx, membershipID); err != nil {
			return err
		}
		return nil
	})

	g.Go(func() error {
		fields, err := h.Cobot.GetCustomFields(ctx, membershipID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to fetch custom fields, continuing without", slog.String("membership_id", membershipID), slog.Any("err", err))
			return nil
		}
		customFields = fields
		return nil
	})

	g.Go(func() error {
		list, err := h.Cobot.GetInvoices(ctx, membershipID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to fetch invoices, continuing without", slog.String("membership_id", membershipID), slog.Any("err", err))
			return nil
		}
		invoices = list
		return nil
	})

	g.Go(func() error {
		bookings, err := h.Cobot.GetBookings(ctx, membershipID, now.AddDate(0, 0, -bookingWindowDays), now)
		if err != nil {
			slog.WarnContext(ctx, "Failed to fetch past bookings, continuing without", slog.String("membership_id", membershipID), slog.Any("err", err))
			return nil
		}
		pastBookings = bookings
		return nil
	})

	g.Go(func() error {
		bookings, err := h.Cobot.GetBookings(ctx, membershipID, now, now.AddDate(0, 0, bookingWindowDays))
		if err != nil {
			slog.WarnContext(ctx, "Failed to fetch upcoming bookings, continuing without", slog.String("membership_id", membershipID), slog.Any("err", err))
			return nil
		}
		futureBookings = bookings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := newMemberBundle(*membership, customFields, invoices, pastBookings, futureBookings, h.formatter)
	return &bundle, nil
}
