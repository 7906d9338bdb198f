package dto

import "github.com/unionbooks/chapter_ledger/internal/core/domain"

// CreateDivisionRequest is the payload for creating a division. Area is a
// free-text grouping label.
type CreateDivisionRequest struct {
	Name string `json:"name" binding:"required"`
	Area string `json:"area"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
}

// CreatePersonRequest is the payload for creating a person.
type CreatePersonRequest struct {
	FullName   string  `json:"fullName" binding:"required"`
	DivisionID *string `json:"divisionID"`
}

// CreateGroupRequest is the payload for creating a group.
type CreateGroupRequest struct {
	Name       string  `json:"name" binding:"required"`
	DivisionID *string `json:"divisionID"`
}

// DivisionResponse is the division representation returned by the API.
type DivisionResponse struct {
	DivisionID string `json:"divisionID"`
	Name       string `json:"name"`
	Area       string `json:"area"`
}

// CategoryResponse is the category representation returned by the API.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
}

// PersonResponse is the person representation returned by the API.
type PersonResponse struct {
	PersonID   string  `json:"personID"`
	FullName   string  `json:"fullName"`
	DivisionID *string `json:"divisionID"`
}

// GroupResponse is the group representation returned by the API.
type GroupResponse struct {
	GroupID    string  `json:"groupID"`
	Name       string  `json:"name"`
	DivisionID *string `json:"divisionID"`
}

func ToDivisionResponse(d *domain.Division) DivisionResponse {
	return DivisionResponse{DivisionID: d.DivisionID, Name: d.Name, Area: d.Area}
}

func ToDivisionResponses(divisions []domain.Division) []DivisionResponse {
	out := make([]DivisionResponse, len(divisions))
	for i := range divisions {
		out[i] = ToDivisionResponse(&divisions[i])
	}
	return out
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Kind: string(c.Kind)}
}

func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}

func ToPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{PersonID: p.PersonID, FullName: p.FullName, DivisionID: p.DivisionID}
}

func ToPersonResponses(persons []domain.Person) []PersonResponse {
	out := make([]PersonResponse, len(persons))
	for i := range persons {
		out[i] = ToPersonResponse(&persons[i])
	}
	return out
}

func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{GroupID: g.GroupID, Name: g.Name, DivisionID: g.DivisionID}
}

func ToGroupResponses(groups []domain.Group) []GroupResponse {
	out := make([]GroupResponse, len(groups))
	for i := range groups {
		out[i] = ToGroupResponse(&groups[i])
	}
	return out
}
