package api

import (
	"encoding/json"
	"strings"
)

// --- Pagination ---

// PageArgs are the cursor window arguments shared by every connection field.
type PageArgs struct {
	After  string
	Before string
	First  int
	Last   int
}

func (p PageArgs) vars(id string) map[string]any {
	vars := map[string]any{"id": id}
	if p.After != "" {
		vars["after"] = p.After
	}
	if p.Before != "" {
		vars["before"] = p.Before
	}
	if p.First > 0 {
		vars["first"] = p.First
	}
	if p.Last > 0 {
		vars["last"] = p.Last
	}
	return vars
}

// PageInfo mirrors the relay page info block.
type PageInfo struct {
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
}

// Page is one decoded slice of a connection.
type Page[T any] struct {
	Items      []T
	PageInfo   PageInfo
	TotalCount int
}

type edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

type connection[T any] struct {
	Edges      []edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int       `json:"totalCount"`
}

func (c connection[T]) page() Page[T] {
	items := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		items = append(items, e.Node)
	}
	return Page[T]{Items: items, PageInfo: c.PageInfo, TotalCount: c.TotalCount}
}

// --- Tags ---

// Tag is a hierarchical label assignable to organization members.
type Tag struct {
	ID         string
	Name       string
	ParentID   string
	ChildCount int
}

// IsLeaf reports whether the tag has no child tags.
func (t Tag) IsLeaf() bool {
	return t.ChildCount == 0
}

type tagWire struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	ParentTag *struct {
		ID string `json:"_id"`
	} `json:"parentTag"`
	ChildTags *struct {
		TotalCount int `json:"totalCount"`
	} `json:"childTags"`
}

// UnmarshalJSON flattens the nested parent and child count fields.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var w tagWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Tag{ID: w.ID, Name: w.Name}
	if w.ParentTag != nil {
		t.ParentID = w.ParentTag.ID
	}
	if w.ChildTags != nil {
		t.ChildCount = w.ChildTags.TotalCount
	}
	return nil
}

// TagPage is a page of tags.
type TagPage = Page[Tag]

// CreateTagInput defines the fields required to create a tag.
type CreateTagInput struct {
	Name           string
	OrganizationID string
	ParentTagID    string
}

// --- Members ---

// MemberRef is the short member shape used in tag member lists.
type MemberRef struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName joins first and last name.
func (m MemberRef) DisplayName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// MemberPage is a page of member refs.
type MemberPage = Page[MemberRef]

// TagRef is a tag reference on a member record.
type TagRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Member is the full member record edited on the member screen.
type Member struct {
	ID               string `json:"_id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Image            string `json:"image"`
	Gender           string `json:"gender"`
	BirthDate        string `json:"birthDate"`
	EducationGrade   string `json:"educationGrade"`
	EmploymentStatus string `json:"employmentStatus"`
	MaritalStatus    string `json:"maritalStatus"`
	CreatedAt        string `json:"createdAt"`
	OrgID            string `json:"orgId"`
	Phone            struct {
		Mobile string `json:"mobile"`
	} `json:"phone"`
	Address struct {
		Line1       string `json:"line1"`
		City        string `json:"city"`
		State       string `json:"state"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
	TagsAssigned []TagRef `json:"tagsAssigned"`

	Profile AppProfile `json:"-"`
}

// AppProfile is the application-level profile attached to a member.
type AppProfile struct {
	ID                    string `json:"_id"`
	AppLanguageCode       string `json:"appLanguageCode"`
	PluginCreationAllowed bool   `json:"pluginCreationAllowed"`
	IsSuperAdmin          bool   `json:"isSuperAdmin"`
	AdminFor              []struct {
		ID string `json:"_id"`
	} `json:"adminFor"`
}

// Role returns the badge shown next to a member name.
func (m Member) Role() string {
	switch {
	case m.Profile.IsSuperAdmin:
		return "Super Admin"
	case len(m.Profile.AdminFor) > 0:
		return "Admin"
	default:
		return "User"
	}
}

// UpdateMemberInput is the full profile form submitted on save.
type UpdateMemberInput struct {
	ID                    string
	FirstName             string
	LastName              string
	Email                 string
	Image                 string
	Gender                string
	BirthDate             string
	EducationGrade        string
	EmploymentStatus      string
	MaritalStatus         string
	PhoneNumber           string
	Address               string
	City                  string
	State                 string
	CountryCode           string
	AppLanguageCode       string
	PluginCreationAllowed bool
}

func (in UpdateMemberInput) vars() map[string]any {
	vars := map[string]any{
		"id":                    in.ID,
		"firstName":             in.FirstName,
		"lastName":              in.LastName,
		"email":                 in.Email,
		"pluginCreationAllowed": in.PluginCreationAllowed,
	}
	optional := map[string]string{
		"image":            in.Image,
		"gender":           in.Gender,
		"birthDate":        in.BirthDate,
		"educationGrade":   in.EducationGrade,
		"employmentStatus": in.EmploymentStatus,
		"maritalStatus":    in.MaritalStatus,
		"phoneNumber":      in.PhoneNumber,
		"address":          in.Address,
		"city":             in.City,
		"state":            in.State,
		"countryCode":      in.CountryCode,
		"appLanguageCode":  in.AppLanguageCode,
	}
	for k, v := range optional {
		if v != "" {
			vars[k] = v
		}
	}
	return vars
}
