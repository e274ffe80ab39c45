// Package caldav pushes triaged events to a CalDAV calendar. iCloud is the
// default endpoint but any server speaking CalDAV with Basic Auth works.
package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"

	"flowlyfe/internal/export"
	"flowlyfe/internal/models"
)

// DefaultEndpoint is used when the config doesn't name a server.
const DefaultEndpoint = "https://caldav.icloud.com/"

// customTransport handles adding Basic Auth and custom headers to requests.
type customTransport struct {
	Username  string
	Password  string
	Transport http.RoundTripper
}

// RoundTrip adds required headers and authentication to each request.
func (t *customTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.Username, t.Password)
	req.Header.Set("User-Agent", "flowlyfe/1.0")
	return t.Transport.RoundTrip(req)
}

// Client is a client for a single named calendar on a CalDAV server.
type Client struct {
	caldavClient *caldav.Client
	webdavClient *webdav.Client
	logger       *slog.Logger
	endpoint     string
	calendarURL  string
}

// NewClient connects to the CalDAV server and resolves the named calendar's
// URL. An empty endpoint falls back to iCloud.
func NewClient(logger *slog.Logger, endpoint, username, password, calendarName string) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	httpClient := &http.Client{Transport: &customTransport{
		Username:  username,
		Password:  password,
		Transport: http.DefaultTransport,
	}}

	caldavClient, err := caldav.NewClient(httpClient, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}

	webdavClient, err := webdav.NewClient(httpClient, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdav client: %w", err)
	}

	c := &Client{
		caldavClient: caldavClient,
		webdavClient: webdavClient,
		logger:       logger,
		endpoint:     endpoint,
	}

	logger.Info("Finding CalDAV calendar", "calendarName", calendarName, "endpoint", endpoint)
	calendarURL, err := c.findCalendar(context.Background(), calendarName)
	if err != nil {
		return nil, fmt.Errorf("could not find calendar '%s': %w", calendarName, err)
	}
	c.calendarURL = calendarURL
	logger.Info("Successfully found CalDAV calendar", "url", calendarURL)

	return c, nil
}

// PushEvent creates the event on the server as <UID>.ics. The event must
// carry a UID; the fallback time resolves a missing date or start time the
// same way the other exporters do.
func (c *Client) PushEvent(ctx context.Context, e models.Event, fallback time.Time) error {
	if e.UID == "" {
		return fmt.Errorf("event %s has no UID", e.ID)
	}
	c.logger.Debug("Pushing event to CalDAV server", "eventTitle", e.Title, "uid", e.UID)

	body, err := export.ICS(e, fallback)
	if err != nil {
		return err
	}

	// The event path must be relative to the endpoint for the webdav client.
	eventPath := path.Join(strings.TrimPrefix(c.calendarURL, c.endpoint), fmt.Sprintf("%s.ics", e.UID))

	writer, err := c.webdavClient.Create(ctx, eventPath)
	if err != nil {
		return fmt.Errorf("failed to create event on CalDAV server: %w", err)
	}
	defer writer.Close()

	if _, err := writer.Write([]byte(body)); err != nil {
		return fmt.Errorf("failed to write event to CalDAV server: %w", err)
	}

	c.logger.Info("Successfully pushed event to CalDAV calendar", "eventTitle", e.Title)
	return nil
}

// findCalendar discovers the user's calendars and returns the URL for the one with the matching name.
func (c *Client) findCalendar(ctx context.Context, name string) (string, error) {
	principalPath, err := c.caldavClient.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal path: %w", err)
	}

	homeSetPath, err := c.caldavClient.FindCalendarHomeSet(ctx, principalPath)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	calendars, err := c.caldavClient.FindCalendars(ctx, homeSetPath)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}

	for _, cal := range calendars {
		if cal.Name == name {
			return strings.TrimSuffix(c.endpoint, "/") + cal.Path, nil
		}
	}

	return "", fmt.Errorf("no calendar found with name '%s'", name)
}

// GenerateUID creates a new unique identifier for an event.
func GenerateUID() string {
	return uuid.New().String()
}
