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


package storage

import (
	"fmt"

	"github.com/kbforge/kbforge/core"
)

// MarshalDocument serializes a document using the MUS format.
func MarshalDocument(doc *core.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrSerializationFailed)
	}
	bs := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, bs)
	return bs, nil
}

// UnmarshalDocument deserializes a document from MUS format.
func UnmarshalDocument(bs []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalTeam serializes a team using the MUS format.
func MarshalTeam(team *core.Team) ([]byte, error) {
	if team == nil {
		return nil, fmt.Errorf("%w: nil team", ErrSerializationFailed)
	}
	bs := make([]byte, core.TeamMUS.Size(*team))
	core.TeamMUS.Marshal(*team, bs)
	return bs, nil
}

// UnmarshalTeam deserializes a team from MUS format.
func UnmarshalTeam(bs []byte) (*core.Team, error) {
	team, _, err := core.TeamMUS.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &team, nil
}

// MarshalUser serializes a user using the MUS format.
func MarshalUser(user *core.User) ([]byte, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: nil user", ErrSerializationFailed)
	}
	bs := make([]byte, core.UserMUS.Size(*user))
	core.UserMUS.Marshal(*user, bs)
	return bs, nil
}

// UnmarshalUser deserializes a user from MUS format.
func UnmarshalUser(bs []byte) (*core.User, error) {
	user, _, err := core.UserMUS.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &user, nil
}

// MarshalID serializes an identifier using the MUS format.
func MarshalID(id core.ID) []byte {
	bs := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, bs)
	return bs
}

// UnmarshalID deserializes an identifier from MUS format.
func UnmarshalID(bs []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(bs)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return id, nil
}
