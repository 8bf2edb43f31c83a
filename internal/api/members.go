package api

import "fmt"

// GetMember loads the full member record with its app profile.
func (c *Client) GetMember(id string) (*Member, error) {
	var resp struct {
		User *struct {
			User           *Member    `json:"user"`
			AppUserProfile AppProfile `json:"appUserProfile"`
		} `json:"user"`
	}
	if err := c.exec(docUserDetails, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.User.User == nil {
		return nil, fmt.Errorf("member %s not found", id)
	}
	member := resp.User.User
	member.Profile = resp.User.AppUserProfile
	return member, nil
}

// UpdateMember submits the whole profile form as one update.
func (c *Client) UpdateMember(input UpdateMemberInput) (*Member, error) {
	var resp struct {
		Member *Member `json:"updateUserProfile"`
	}
	if err := c.exec(docUpdateUserProfile, input.vars(), &resp); err != nil {
		return nil, err
	}
	if resp.Member == nil {
		return nil, fmt.Errorf("update member: empty response")
	}
	return resp.Member, nil
}
