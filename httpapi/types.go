package httpapi

import (
	"time"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/docs"
	"github.com/kbforge/kbforge/teams"
)

// Wire representations. Embeddings never leave the server.

type userRefJSON struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

func toUserRefJSON(ref *core.UserRef) *userRefJSON {
	if ref == nil {
		return nil
	}
	return &userRefJSON{
		ID:     uint64(ref.Id),
		Name:   ref.Name,
		Email:  ref.Email,
		Avatar: ref.Avatar,
	}
}

type versionJSON struct {
	Title    string    `json:"title,omitempty"`
	Content  string    `json:"content,omitempty"`
	EditedBy uint64    `json:"edited_by"`
	EditedAt time.Time `json:"edited_at"`
}

type accessJSON struct {
	User  uint64 `json:"user"`
	Level string `json:"level"`
}

type documentJSON struct {
	ID        uint64        `json:"id"`
	Team      uint64        `json:"team"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Summary   string        `json:"summary,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	CreatedBy uint64        `json:"created_by"`
	UpdatedBy uint64        `json:"updated_by"`
	Versions  []versionJSON `json:"versions,omitempty"`
	Access    []accessJSON  `json:"access,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func toDocumentJSON(doc *core.Document) *documentJSON {
	versions := make([]versionJSON, len(doc.Versions))
	for i, v := range doc.Versions {
		versions[i] = versionJSON{
			Title:    v.Title,
			Content:  v.Content,
			EditedBy: uint64(v.EditedBy),
			EditedAt: v.EditedAt,
		}
	}
	var access []accessJSON
	for _, entry := range doc.Access {
		access = append(access, accessJSON{User: uint64(entry.User), Level: entry.Level.String()})
	}
	return &documentJSON{
		ID:        uint64(doc.Id),
		Team:      uint64(doc.Team),
		Title:     doc.Title,
		Content:   doc.Content,
		Summary:   doc.Summary,
		Tags:      doc.Tags,
		CreatedBy: uint64(doc.CreatedBy),
		UpdatedBy: uint64(doc.UpdatedBy),
		Versions:  versions,
		Access:    access,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

type documentDetailJSON struct {
	Document       *documentJSON  `json:"document"`
	CreatedBy      *userRefJSON   `json:"created_by,omitempty"`
	UpdatedBy      *userRefJSON   `json:"updated_by,omitempty"`
	VersionEditors []*userRefJSON `json:"version_editors,omitempty"`
}

func toDocumentDetailJSON(detail *docs.DocumentDetail) *documentDetailJSON {
	editors := make([]*userRefJSON, len(detail.VersionEditors))
	for i, ref := range detail.VersionEditors {
		editors[i] = toUserRefJSON(ref)
	}
	return &documentDetailJSON{
		Document:       toDocumentJSON(detail.Document),
		CreatedBy:      toUserRefJSON(detail.CreatedBy),
		UpdatedBy:      toUserRefJSON(detail.UpdatedBy),
		VersionEditors: editors,
	}
}

type resultJSON struct {
	Document       *documentJSON  `json:"document"`
	Score          float32        `json:"score"`
	CreatedBy      *userRefJSON   `json:"created_by,omitempty"`
	UpdatedBy      *userRefJSON   `json:"updated_by,omitempty"`
	VersionEditors []*userRefJSON `json:"version_editors,omitempty"`
}

func toResultJSON(res *core.ScoredResult) *resultJSON {
	editors := make([]*userRefJSON, len(res.VersionEditors))
	for i, ref := range res.VersionEditors {
		editors[i] = toUserRefJSON(ref)
	}
	return &resultJSON{
		Document:       toDocumentJSON(res.Document),
		Score:          res.Score,
		CreatedBy:      toUserRefJSON(res.CreatedBy),
		UpdatedBy:      toUserRefJSON(res.UpdatedBy),
		VersionEditors: editors,
	}
}

type activityJSON struct {
	Document  *documentJSON `json:"document"`
	TeamName  string        `json:"team_name"`
	UpdatedBy *userRefJSON  `json:"updated_by,omitempty"`
}

func toActivityJSON(entry *docs.Activity) *activityJSON {
	return &activityJSON{
		Document:  toDocumentJSON(entry.Document),
		TeamName:  entry.TeamName,
		UpdatedBy: toUserRefJSON(entry.UpdatedBy),
	}
}

type memberJSON struct {
	User *userRefJSON `json:"user"`
	Role string       `json:"role"`
}

type teamJSON struct {
	ID        uint64       `json:"id"`
	Name      string       `json:"name"`
	Members   []memberJSON `json:"members"`
	Documents []uint64     `json:"documents,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func toTeamJSON(team *core.Team) *teamJSON {
	members := make([]memberJSON, len(team.Members))
	for i, m := range team.Members {
		members[i] = memberJSON{
			User: &userRefJSON{ID: uint64(m.User)},
			Role: m.Role.String(),
		}
	}
	docIDs := make([]uint64, len(team.Documents))
	for i, id := range team.Documents {
		docIDs[i] = uint64(id)
	}
	return &teamJSON{
		ID:        uint64(team.Id),
		Name:      team.Name,
		Members:   members,
		Documents: docIDs,
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
	}
}

type teamViewJSON struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Members   []memberJSON    `json:"members"`
	Documents []*documentJSON `json:"documents,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toTeamViewJSON(view *teams.TeamView) *teamViewJSON {
	members := make([]memberJSON, len(view.Members))
	for i, m := range view.Members {
		members[i] = memberJSON{User: toUserRefJSON(m.User), Role: m.Role.String()}
	}
	documents := make([]*documentJSON, len(view.Documents))
	for i, doc := range view.Documents {
		documents[i] = toDocumentJSON(doc)
	}
	return &teamViewJSON{
		ID:        uint64(view.Team.Id),
		Name:      view.Team.Name,
		Role:      view.Role.String(),
		Members:   members,
		Documents: documents,
		CreatedAt: view.Team.CreatedAt,
		UpdatedAt: view.Team.UpdatedAt,
	}
}
