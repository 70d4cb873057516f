package teams

import "errors"

var (
	// ErrTeamRepositoryRequired is returned when a team repository is not provided.
	ErrTeamRepositoryRequired = errors.New("team repository required")

	// ErrUserRepositoryRequired is returned when a user repository is not provided.
	ErrUserRepositoryRequired = errors.New("user repository required")

	// ErrNameRequired is returned when a team is created without a name.
	ErrNameRequired = errors.New("team name required")

	// ErrUserRequired is returned when an operation is missing the acting user.
	ErrUserRequired = errors.New("user required")

	// ErrEmailRequired is returned when an invite is missing the email address.
	ErrEmailRequired = errors.New("email required")

	// ErrAlreadyMember is returned when the invited user already belongs to the team.
	ErrAlreadyMember = errors.New("user already in team")

	// ErrAdminRequired is returned when a member-management operation is
	// attempted by a non-admin.
	ErrAdminRequired = errors.New("only admins can remove members")

	// ErrCannotRemoveAdmin is returned when the removal target is an admin.
	ErrCannotRemoveAdmin = errors.New("cannot remove another admin")

	// ErrMemberNotFound is returned when the removal target is not a member
	// of the team.
	ErrMemberNotFound = errors.New("member not found in team")
)
