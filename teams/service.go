// Copyright 2025 The kbforge Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package teams

import (
	"context"
	"log/slog"
	"slices"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// Service manages team membership: creation, invites by email, and
// admin-gated member removal. Membership changes cascade into the user's
// team list so scope resolution stays consistent.
type Service struct {
	teams  storage.TeamRepository
	users  storage.UserRepository
	docs   storage.DocumentRepository
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewService creates a team management service. The document repository
// is optional; without it ListForUser leaves documents unhydrated.
func NewService(
	teamRepository storage.TeamRepository,
	userRepository storage.UserRepository,
	docRepository storage.DocumentRepository,
	opts ...Option,
) (*Service, error) {
	if teamRepository == nil {
		return nil, ErrTeamRepositoryRequired
	}
	if userRepository == nil {
		return nil, ErrUserRepositoryRequired
	}

	s := &Service{
		teams:  teamRepository,
		users:  userRepository,
		docs:   docRepository,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Create stores a new team with the creator as its admin and adds the
// team to the creator's team list.
func (s *Service) Create(ctx context.Context, name string, userID core.ID) (*core.Team, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if userID == 0 {
		return nil, ErrUserRequired
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	added, err := s.teams.AddTeams(ctx, &core.Team{
		Name:    name,
		Members: []core.Member{{User: userID, Role: core.RoleAdmin}},
	})
	if err != nil {
		return nil, err
	}
	team := added[0]

	user.Teams = append(user.Teams, team.Id)
	if _, err := s.users.UpdateUsers(ctx, user); err != nil {
		return nil, err
	}

	return team, nil
}

// Invite adds the user with the given email to the team as a regular
// member and records the team in the user's team list. Inviting an
// existing member returns ErrAlreadyMember.
func (s *Service) Invite(ctx context.Context, teamID core.ID, email string) (*core.Team, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.HasMember(user.Id) {
		return nil, ErrAlreadyMember
	}

	team.Members = append(team.Members, core.Member{User: user.Id, Role: core.RoleUser})
	updated, err := s.teams.UpdateTeams(ctx, team)
	if err != nil {
		return nil, err
	}
	team = updated[0]

	if !slices.Contains(user.Teams, team.Id) {
		user.Teams = append(user.Teams, team.Id)
		if _, err := s.users.UpdateUsers(ctx, user); err != nil {
			return nil, err
		}
	}

	return team, nil
}

// RemoveMember removes a regular member from the team. Only admins may
// remove members, and an admin can never be removed. The team is also
// dropped from the removed user's team list.
func (s *Service) RemoveMember(ctx context.Context, teamID, memberID, requesterID core.ID) (*core.Team, error) {
	if requesterID == 0 {
		return nil, ErrUserRequired
	}

	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	role, ok := team.MemberRole(requesterID)
	if !ok || role != core.RoleAdmin {
		return nil, ErrAdminRequired
	}

	targetRole, ok := team.MemberRole(memberID)
	if !ok {
		return nil, ErrMemberNotFound
	}
	if targetRole == core.RoleAdmin {
		return nil, ErrCannotRemoveAdmin
	}

	team.Members = slices.DeleteFunc(team.Members, func(m core.Member) bool {
		return m.User == memberID
	})
	updated, err := s.teams.UpdateTeams(ctx, team)
	if err != nil {
		return nil, err
	}
	team = updated[0]

	user, err := s.users.GetUser(ctx, memberID)
	if err != nil {
		// Membership is already gone; a missing user record only breaks
		// the reverse index cleanup.
		s.logger.Warn("removed member has no user record", "member", memberID, "err", err)
		return team, nil
	}
	if i := slices.Index(user.Teams, teamID); i >= 0 {
		user.Teams = slices.Delete(user.Teams, i, i+1)
		if _, err := s.users.UpdateUsers(ctx, user); err != nil {
			return nil, err
		}
	}

	return team, nil
}

// MemberView is a hydrated team member.
type MemberView struct {
	User *core.UserRef
	Role core.Role
}

// TeamView is a team from the caller's perspective: the caller's own
// role plus hydrated members and documents.
type TeamView struct {
	Team      *core.Team
	Role      core.Role
	Members   []MemberView
	Documents []*core.Document
}

// ListForUser returns the teams the user belongs to, each with the
// user's role and hydrated members and documents. Hydration failures
// degrade the affected fields, never the listing.
func (s *Service) ListForUser(ctx context.Context, userID core.ID) ([]*TeamView, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}

	teamIDs, err := s.users.TeamsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) == 0 {
		return []*TeamView{}, nil
	}

	teamList, err := s.teams.GetTeams(ctx, teamIDs...)
	if err != nil {
		return nil, err
	}

	memberSet := make(map[core.ID]bool)
	for _, team := range teamList {
		for _, m := range team.Members {
			memberSet[m.User] = true
		}
	}
	memberIDs := make([]core.ID, 0, len(memberSet))
	for id := range memberSet {
		memberIDs = append(memberIDs, id)
	}

	byID := make(map[core.ID]*core.User, len(memberIDs))
	if users, err := s.users.GetUsers(ctx, memberIDs...); err != nil {
		s.logger.Warn("member lookup failed", "err", err)
	} else {
		for _, u := range users {
			byID[u.Id] = u
		}
	}

	views := make([]*TeamView, 0, len(teamList))
	for _, team := range teamList {
		role, _ := team.MemberRole(userID)
		if role == 0 {
			role = core.RoleUser
		}

		view := &TeamView{
			Team:    team,
			Role:    role,
			Members: make([]MemberView, len(team.Members)),
		}
		for i, m := range team.Members {
			view.Members[i] = MemberView{User: byID[m.User].Ref(), Role: m.Role}
		}

		if s.docs != nil && len(team.Documents) > 0 {
			docsForTeam, err := s.docs.GetDocuments(ctx, team.Documents...)
			if err != nil {
				s.logger.Warn("document lookup failed", "team", team.Id, "err", err)
			} else {
				view.Documents = docsForTeam
			}
		}

		views = append(views, view)
	}

	return views, nil
}
