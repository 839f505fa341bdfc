package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stagehandapp/stagehand/internal/event"
)

type speakerRecord struct {
	ID             string `json:"id"`
	EventID        string `json:"event_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Bio            string `json:"bio"`
	TagLine        string `json:"tag_line"`
	ProfilePicture string `json:"profile_picture"`
	IsTopSpeaker   bool   `json:"is_top_speaker"`
}

func (r speakerRecord) domain() *event.Speaker {
	return &event.Speaker{
		ID:             r.ID,
		EventID:        r.EventID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Bio:            r.Bio,
		TagLine:        r.TagLine,
		ProfilePicture: r.ProfilePicture,
		IsTopSpeaker:   r.IsTopSpeaker,
	}
}

// ListSpeakers returns all speaker profiles for an event.
func (c *Client) ListSpeakers(ctx context.Context, eventID string) ([]*event.Speaker, error) {
	var records []speakerRecord
	if err := c.do(ctx, http.MethodGet, "/events/"+eventID+"/speakers", nil, &records); err != nil {
		return nil, fmt.Errorf("listing speakers: %w", err)
	}
	speakers := make([]*event.Speaker, len(records))
	for i, r := range records {
		speakers[i] = r.domain()
	}
	return speakers, nil
}

// CreateSpeaker adds a speaker profile.
func (c *Client) CreateSpeaker(ctx context.Context, eventID string, sp *event.Speaker) (*event.Speaker, error) {
	body := map[string]any{
		"first_name": sp.FirstName,
		"last_name":  sp.LastName,
	}
	if sp.Bio != "" {
		body["bio"] = sp.Bio
	}
	if sp.TagLine != "" {
		body["tag_line"] = sp.TagLine
	}
	if sp.IsTopSpeaker {
		body["is_top_speaker"] = true
	}
	var record speakerRecord
	if err := c.do(ctx, http.MethodPost, "/events/"+eventID+"/speakers", body, &record); err != nil {
		return nil, fmt.Errorf("creating speaker: %w", err)
	}
	return record.domain(), nil
}

// DeleteSpeaker removes a speaker profile.
func (c *Client) DeleteSpeaker(ctx context.Context, eventID, speakerID string) error {
	if err := c.do(ctx, http.MethodDelete, "/events/"+eventID+"/speakers/"+speakerID, nil, nil); err != nil {
		return fmt.Errorf("deleting speaker: %w", err)
	}
	return nil
}

type teamMemberRecord struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
}

func (r teamMemberRecord) domain() event.TeamMember {
	return event.TeamMember{
		EventID:  r.EventID,
		UserID:   r.UserID,
		Name:     r.Name,
		LastName: r.LastName,
		Email:    r.Email,
	}
}

// ListTeamMembers returns the organizers with access to an event.
func (c *Client) ListTeamMembers(ctx context.Context, eventID string) ([]event.TeamMember, error) {
	var records []teamMemberRecord
	if err := c.do(ctx, http.MethodGet, "/events/"+eventID+"/team-members", nil, &records); err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	members := make([]event.TeamMember, len(records))
	for i, r := range records {
		members[i] = r.domain()
	}
	return members, nil
}

// AddTeamMember grants an existing user access to the event by email.
func (c *Client) AddTeamMember(ctx context.Context, eventID, email string) (event.TeamMember, error) {
	var record teamMemberRecord
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/events/"+eventID+"/team-members", body, &record); err != nil {
		return event.TeamMember{}, fmt.Errorf("adding team member: %w", err)
	}
	return record.domain(), nil
}

// RemoveTeamMember revokes a user's access to the event.
func (c *Client) RemoveTeamMember(ctx context.Context, eventID, userID string) error {
	if err := c.do(ctx, http.MethodDelete, "/events/"+eventID+"/team-members/"+userID, nil, nil); err != nil {
		return fmt.Errorf("removing team member: %w", err)
	}
	return nil
}

type invitationRecord struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Email   string `json:"email"`
	SentAt  string `json:"sent_at"`
}

// InvitationPage is one page of attendee invitations.
type InvitationPage struct {
	Items      []event.Invitation
	Pagination event.Pagination
}

// ListInvitations returns one page of attendee invitations.
func (c *Client) ListInvitations(ctx context.Context, eventID string, page, pageSize int) (*InvitationPage, error) {
	var resp struct {
		Items      []invitationRecord `json:"items"`
		Pagination struct {
			Page       int `json:"page"`
			PageSize   int `json:"page_size"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	path := "/events/" + eventID + "/invitations?page=" + strconv.Itoa(page) + "&page_size=" + strconv.Itoa(pageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}

	out := &InvitationPage{
		Items: make([]event.Invitation, len(resp.Items)),
		Pagination: event.Pagination{
			Page:       resp.Pagination.Page,
			PageSize:   resp.Pagination.PageSize,
			Total:      resp.Pagination.Total,
			TotalPages: resp.Pagination.TotalPages,
		},
	}
	for i, r := range resp.Items {
		inv := event.Invitation{ID: r.ID, EventID: r.EventID, Email: r.Email}
		if t, err := time.Parse(time.RFC3339, r.SentAt); err == nil {
			inv.SentAt = &t
		}
		out.Items[i] = inv
	}
	return out, nil
}

// InvitationResult summarizes a batch send.
type InvitationResult struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// SendInvitations emails registration invitations to the given addresses.
func (c *Client) SendInvitations(ctx context.Context, eventID string, emails []string) (*InvitationResult, error) {
	var result InvitationResult
	body := map[string][]string{"emails": emails}
	if err := c.do(ctx, http.MethodPost, "/events/"+eventID+"/invitations", body, &result); err != nil {
		return nil, fmt.Errorf("sending invitations: %w", err)
	}
	return &result, nil
}

// ImportSessionize pulls rooms, speakers and sessions from a Sessionize
// event into this one. Existing records are matched by sessionize id.
func (c *Client) ImportSessionize(ctx context.Context, eventID, sessionizeID string) error {
	if err := c.do(ctx, http.MethodPost, "/events/"+eventID+"/import/sessionize/"+sessionizeID, nil, nil); err != nil {
		return fmt.Errorf("importing from sessionize: %w", err)
	}
	return nil
}
