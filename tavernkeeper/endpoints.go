package tavernkeeper

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// Resource paths, relative to the API host.

func UserCampaignsPath(userID string) string {
	return fmt.Sprintf("/api_v0/users/%s/campaigns", url.PathEscape(userID))
}

func UserCharactersPath(userID string) string {
	return fmt.Sprintf("/api_v0/users/%s/characters", url.PathEscape(userID))
}

func CharacterPath(id string) string {
	return fmt.Sprintf("/api_v0/characters/%s", url.PathEscape(id))
}

func CampaignRoleplaysPath(campaignID string) string {
	return fmt.Sprintf("/api_v0/campaigns/%s/roleplays", url.PathEscape(campaignID))
}

func CampaignDiscussionsPath(campaignID string) string {
	return fmt.Sprintf("/api_v0/campaigns/%s/discussions", url.PathEscape(campaignID))
}

func DiscussionPath(campaignID, discussionID string) string {
	return fmt.Sprintf("%s/%s", CampaignDiscussionsPath(campaignID), url.PathEscape(discussionID))
}

func DiscussionCommentsPath(campaignID, discussionID string) string {
	return DiscussionPath(campaignID, discussionID) + "/comments"
}

func RoleplayPath(id string) string {
	return fmt.Sprintf("/api_v0/roleplays/%s", url.PathEscape(id))
}

func RoleplayMessagesPath(id string) string {
	return RoleplayPath(id) + "/messages"
}

func MessageCommentsPath(roleplayID, messageID string) string {
	return fmt.Sprintf("%s/%s/comments", RoleplayMessagesPath(roleplayID), url.PathEscape(messageID))
}

// pagedEndpoint returns the endpoint for one page of a collection.
func (api *API) pagedEndpoint(resource string, opts PageQuery) (*url.URL, error) {
	ep, err := api.resolveEndpoint(resource)
	if err != nil {
		return nil, fmt.Errorf("tavernkeeper: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("tavernkeeper: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (api *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("tavernkeeper: failed to parse endpoint ref: %w", err)
	}

	return api.BaseURI.ResolveReference(ref), nil
}
