package google

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"booking/config"
	"booking/internal/domain/entity"
	"booking/internal/domain/repository"
	"booking/internal/domain/schedule"
	"booking/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const providerName = "google"

// reminderMinutes is the popup reminder attached to every created event.
const reminderMinutes = 15

// CalendarProvider implements service.CalendarProvider on the Google
// Calendar API, authenticating each call with the stored refresh credential.
type CalendarProvider struct {
	conf       *oauth2.Config
	calendarID string
	repo       repository.CredentialRepository
	logger     *slog.Logger
}

// NewCalendarProvider creates the Google Calendar provider.
func NewCalendarProvider(
	cfg *config.Config,
	repo repository.CredentialRepository,
	logger *slog.Logger,
) service.CalendarProvider {
	calendarID := "primary"
	if cfg.GoogleCalendar != nil && cfg.GoogleCalendar.CalendarID != "" {
		calendarID = cfg.GoogleCalendar.CalendarID
	}

	return &CalendarProvider{
		conf:       newOAuthConfig(cfg),
		calendarID: calendarID,
		repo:       repo,
		logger:     logger,
	}
}

// newService builds a Calendar API client backed by the stored refresh
// credential. Built per call: the credential can be replaced or purged at
// any time by the health monitor or an admin.
func (p *CalendarProvider) newService(ctx context.Context) (*calendar.Service, error) {
	if p.conf == nil {
		return nil, errors.New("google calendar integration is not configured")
	}

	credential, err := p.repo.FindCredential(ctx, providerName)
	if err != nil {
		return nil, errors.Wrap(err, "no usable calendar credential")
	}

	source := p.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: credential.RefreshToken})
	svc, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build calendar client")
	}

	return svc, nil
}

func (p *CalendarProvider) QueryBusy(ctx context.Context, window entity.TimeInterval) ([]entity.TimeInterval, error) {
	svc, err := p.newService(ctx)
	if err != nil {
		return nil, err
	}

	request := &calendar.FreeBusyRequest{
		TimeMin:  window.Start.Format(time.RFC3339),
		TimeMax:  window.End.Format(time.RFC3339),
		TimeZone: "UTC",
		Items:    []*calendar.FreeBusyRequestItem{{Id: p.calendarID}},
	}
	response, err := svc.Freebusy.Query(request).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "free/busy query failed")
	}

	periods := response.Calendars[p.calendarID].Busy
	busy := make([]entity.TimeInterval, 0, len(periods))
	for _, period := range periods {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, errors.Wrapf(err, "unparseable busy start %q", period.Start)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, errors.Wrapf(err, "unparseable busy end %q", period.End)
		}
		busy = append(busy, entity.TimeInterval{Start: start, End: end})
	}

	return busy, nil
}

// CreateEvent inserts the appointment with a Meet conference and a popup
// reminder. ConferenceDataVersion(1) is required for Google to honor the
// conference create request.
func (p *CalendarProvider) CreateEvent(ctx context.Context, slot entity.TimeInterval, meta service.EventMetadata) (*service.EventRef, error) {
	svc, err := p.newService(ctx)
	if err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("Rendez-vous : %s", meta.Name),
		Description: eventDescription(meta),
		Start: &calendar.EventDateTime{
			DateTime: slot.Start.Format(time.RFC3339),
			TimeZone: schedule.HomeTimezone,
		},
		End: &calendar.EventDateTime{
			DateTime: slot.End.Format(time.RFC3339),
			TimeZone: schedule.HomeTimezone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: meta.Email, DisplayName: meta.Name},
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: fmt.Sprintf("booking-%d", slot.Start.Unix()),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: reminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := svc.Events.Insert(p.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "event insertion failed")
	}

	ref := &service.EventRef{
		EventID:  created.Id,
		MeetLink: meetLink(created),
		HTMLLink: created.HtmlLink,
		Start:    slot.Start,
		End:      slot.End,
	}
	p.logger.Info("calendar event created",
		slog.String("event_id", ref.EventID),
		slog.Time("start", ref.Start),
	)

	return ref, nil
}

func eventDescription(meta service.EventMetadata) string {
	lines := []string{
		fmt.Sprintf("Nom : %s", meta.Name),
		fmt.Sprintf("Email : %s", meta.Email),
	}
	if meta.Phone != "" {
		lines = append(lines, fmt.Sprintf("Téléphone : %s", meta.Phone))
	}
	if meta.Topic != "" {
		lines = append(lines, fmt.Sprintf("Sujet : %s", meta.Topic))
	}

	return strings.Join(lines, "\n")
}

// meetLink extracts the Meet URL from the created event, preferring the
// structured conference entry points over the legacy hangout link.
func meetLink(event *calendar.Event) string {
	if event.ConferenceData != nil {
		for _, entry := range event.ConferenceData.EntryPoints {
			if entry.EntryPointType == "video" && entry.Uri != "" {
				return entry.Uri
			}
		}
	}

	return event.HangoutLink
}
