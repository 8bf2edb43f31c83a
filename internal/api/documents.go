package api

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// document is a parsed GraphQL operation ready to send.
type document struct {
	name   string
	kind   ast.Operation
	source string
}

// mustDocument parses src and panics when it is not a single named operation.
func mustDocument(src string) document {
	doc, err := parseDocument(src)
	if err != nil {
		panic(err)
	}
	return doc
}

func parseDocument(src string) (document, error) {
	parsed, err := parser.ParseQuery(&ast.Source{Input: src})
	if err != nil {
		return document{}, fmt.Errorf("parse graphql document: %w", err)
	}
	if len(parsed.Operations) != 1 {
		return document{}, fmt.Errorf("graphql document must hold one operation, got %d", len(parsed.Operations))
	}
	op := parsed.Operations[0]
	if op.Name == "" {
		return document{}, fmt.Errorf("graphql operation must be named")
	}
	return document{name: op.Name, kind: op.Operation, source: src}, nil
}

const tagPageFields = `
    edges {
      node {
        _id
        name
        parentTag { _id }
        childTags(first: 1) { totalCount }
      }
      cursor
    }
    pageInfo {
      startCursor
      endCursor
      hasNextPage
      hasPreviousPage
    }
    totalCount`

const memberPageFields = `
    edges {
      node {
        _id
        firstName
        lastName
      }
      cursor
    }
    pageInfo {
      startCursor
      endCursor
      hasNextPage
      hasPreviousPage
    }
    totalCount`

var (
	docOrganizationUserTags = mustDocument(`query OrganizationUserTags($id: ID!, $after: String, $before: String, $first: PositiveInt, $last: PositiveInt) {
  organizations(id: $id) {
    userTags(after: $after, before: $before, first: $first, last: $last) {` + tagPageFields + `
    }
  }
}`)

	docUserTagChildTags = mustDocument(`query UserTagChildTags($id: ID!, $after: String, $before: String, $first: PositiveInt, $last: PositiveInt) {
  getUserTag(id: $id) {
    name
    childTags(after: $after, before: $before, first: $first, last: $last) {` + tagPageFields + `
    }
  }
}`)

	docUserTagAncestors = mustDocument(`query UserTagAncestors($id: ID!) {
  getUserTagAncestors(id: $id) {
    _id
    name
  }
}`)

	docUserTagMembersToAssignTo = mustDocument(`query UserTagMembersToAssignTo($id: ID!, $after: String, $before: String, $first: PositiveInt, $last: PositiveInt) {
  getUserTag(id: $id) {
    name
    usersToAssignTo(after: $after, before: $before, first: $first, last: $last) {` + memberPageFields + `
    }
  }
}`)

	docUserTagAssignedMembers = mustDocument(`query UserTagAssignedMembers($id: ID!, $after: String, $before: String, $first: PositiveInt, $last: PositiveInt) {
  getUserTag(id: $id) {
    name
    usersAssignedTo(after: $after, before: $before, first: $first, last: $last) {` + memberPageFields + `
    }
  }
}`)

	docAddPeopleToTag = mustDocument(`mutation AddPeopleToUserTag($tagId: ID!, $userIds: [ID!]!) {
  addPeopleToUserTag(input: { tagId: $tagId, userIds: $userIds }) {
    _id
    name
  }
}`)

	docCreateUserTag = mustDocument(`mutation CreateUserTag($name: String!, $organizationId: ID!, $parentTagId: ID) {
  createUserTag(input: { name: $name, organizationId: $organizationId, parentTagId: $parentTagId }) {
    _id
    name
    parentTag { _id }
  }
}`)

	docAssignUserTag = mustDocument(`mutation AssignUserTag($tagId: ID!, $userId: ID!) {
  assignUserTag(input: { tagId: $tagId, userId: $userId }) {
    _id
  }
}`)

	docUnassignUserTag = mustDocument(`mutation UnassignUserTag($tagId: ID!, $userId: ID!) {
  unassignUserTag(input: { tagId: $tagId, userId: $userId }) {
    _id
  }
}`)

	docUserDetails = mustDocument(`query UserDetails($id: ID!) {
  user(id: $id) {
    user {
      _id
      firstName
      lastName
      email
      image
      gender
      birthDate
      educationGrade
      employmentStatus
      maritalStatus
      createdAt
      orgId
      phone { mobile }
      address { line1 city state countryCode }
      tagsAssigned { _id name }
    }
    appUserProfile {
      _id
      appLanguageCode
      pluginCreationAllowed
      isSuperAdmin
      adminFor { _id }
    }
  }
}`)

	docUpdateUserProfile = mustDocument(`mutation UpdateUserProfile($id: ID!, $firstName: String, $lastName: String, $email: EmailAddress, $image: String, $gender: Gender, $birthDate: Date, $educationGrade: EducationGrade, $employmentStatus: EmploymentStatus, $maritalStatus: MaritalStatus, $phoneNumber: PhoneNumber, $address: String, $city: String, $state: String, $countryCode: String, $appLanguageCode: String, $pluginCreationAllowed: Boolean) {
  updateUserProfile(
    id: $id
    data: {
      firstName: $firstName
      lastName: $lastName
      email: $email
      gender: $gender
      birthDate: $birthDate
      educationGrade: $educationGrade
      employmentStatus: $employmentStatus
      maritalStatus: $maritalStatus
      phone: { mobile: $phoneNumber }
      address: { line1: $address, city: $city, state: $state, countryCode: $countryCode }
      appLanguageCode: $appLanguageCode
      pluginCreationAllowed: $pluginCreationAllowed
    }
    file: $image
  ) {
    _id
    firstName
    lastName
    email
    image
  }
}`)
)
