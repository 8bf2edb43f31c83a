package api

import "fmt"

// OrganizationUserTags returns one page of the organization's root tags.
func (c *Client) OrganizationUserTags(orgID string, args PageArgs) (TagPage, error) {
	var resp struct {
		Organizations []struct {
			UserTags connection[Tag] `json:"userTags"`
		} `json:"organizations"`
	}
	if err := c.exec(docOrganizationUserTags, args.vars(orgID), &resp); err != nil {
		return TagPage{}, err
	}
	if len(resp.Organizations) == 0 {
		return TagPage{}, fmt.Errorf("organization %s not found", orgID)
	}
	return resp.Organizations[0].UserTags.page(), nil
}

// UserTagChildTags returns one page of a tag's direct children.
func (c *Client) UserTagChildTags(tagID string, args PageArgs) (TagPage, error) {
	var resp struct {
		GetUserTag *struct {
			ChildTags connection[Tag] `json:"childTags"`
		} `json:"getUserTag"`
	}
	if err := c.exec(docUserTagChildTags, args.vars(tagID), &resp); err != nil {
		return TagPage{}, err
	}
	if resp.GetUserTag == nil {
		return TagPage{}, fmt.Errorf("tag %s not found", tagID)
	}
	return resp.GetUserTag.ChildTags.page(), nil
}

// UserTagAncestors returns the chain from the root down to and including tagID.
func (c *Client) UserTagAncestors(tagID string) ([]Tag, error) {
	var resp struct {
		Chain []Tag `json:"getUserTagAncestors"`
	}
	if err := c.exec(docUserTagAncestors, map[string]any{"id": tagID}, &resp); err != nil {
		return nil, err
	}
	return resp.Chain, nil
}

// UserTagMembersToAssignTo returns members of the organization not yet holding tagID.
func (c *Client) UserTagMembersToAssignTo(tagID string, args PageArgs) (MemberPage, error) {
	var resp struct {
		GetUserTag *struct {
			UsersToAssignTo connection[MemberRef] `json:"usersToAssignTo"`
		} `json:"getUserTag"`
	}
	if err := c.exec(docUserTagMembersToAssignTo, args.vars(tagID), &resp); err != nil {
		return MemberPage{}, err
	}
	if resp.GetUserTag == nil {
		return MemberPage{}, fmt.Errorf("tag %s not found", tagID)
	}
	return resp.GetUserTag.UsersToAssignTo.page(), nil
}

// UserTagAssignedMembers returns members currently holding tagID.
func (c *Client) UserTagAssignedMembers(tagID string, args PageArgs) (MemberPage, error) {
	var resp struct {
		GetUserTag *struct {
			UsersAssignedTo connection[MemberRef] `json:"usersAssignedTo"`
		} `json:"getUserTag"`
	}
	if err := c.exec(docUserTagAssignedMembers, args.vars(tagID), &resp); err != nil {
		return MemberPage{}, err
	}
	if resp.GetUserTag == nil {
		return MemberPage{}, fmt.Errorf("tag %s not found", tagID)
	}
	return resp.GetUserTag.UsersAssignedTo.page(), nil
}

// AddPeopleToTag assigns tagID to every member in memberIDs.
func (c *Client) AddPeopleToTag(tagID string, memberIDs []string) (*Tag, error) {
	var resp struct {
		Tag *Tag `json:"addPeopleToUserTag"`
	}
	vars := map[string]any{"tagId": tagID, "userIds": memberIDs}
	if err := c.exec(docAddPeopleToTag, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Tag == nil {
		return nil, fmt.Errorf("add people to tag: empty response")
	}
	return resp.Tag, nil
}

// CreateUserTag creates a tag, nested under ParentTagID when set.
func (c *Client) CreateUserTag(input CreateTagInput) (*Tag, error) {
	vars := map[string]any{
		"name":           input.Name,
		"organizationId": input.OrganizationID,
	}
	if input.ParentTagID != "" {
		vars["parentTagId"] = input.ParentTagID
	}
	var resp struct {
		Tag *Tag `json:"createUserTag"`
	}
	if err := c.exec(docCreateUserTag, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Tag == nil {
		return nil, fmt.Errorf("create tag: empty response")
	}
	return resp.Tag, nil
}

// AssignUserTag assigns one tag to one member.
func (c *Client) AssignUserTag(tagID, memberID string) error {
	vars := map[string]any{"tagId": tagID, "userId": memberID}
	return c.exec(docAssignUserTag, vars, nil)
}

// UnassignUserTag removes one tag from one member.
func (c *Client) UnassignUserTag(tagID, memberID string) error {
	vars := map[string]any{"tagId": tagID, "userId": memberID}
	return c.exec(docUnassignUserTag, vars, nil)
}
