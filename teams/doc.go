// Package teams implements team management: creation with the creator
// as admin, invites by email, admin-gated member removal, and a hydrated
// per-user team listing. Membership changes cascade into the affected
// user's team list, which is what access scope resolution reads.
package teams
