/* Copyright 2025 Booksales Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package app

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/khwaab/booksales/pkg/server/store"
	"github.com/pkg/errors"
)

// sessionDuration is how long an issued session stays valid
const sessionDuration = 24 * 100 * time.Hour

// Session represents an authenticated principal. Sessions are process-local:
// they live in memory only and a restart signs everyone out, which is
// acceptable for an internal tool.
type Session struct {
	Key        string
	Username   string
	LastUsedAt time.Time
	ExpiresAt  time.Time
}

// getRandomStr returns a cryptographically secure random string of the
// given length in bytes, base64 encoded
func getRandomStr(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "reading random bytes")
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// CreateSession returns a new session for the user of the given username
func (a *App) CreateSession(username string) (Session, error) {
	key, err := getRandomStr(32)
	if err != nil {
		return Session{}, errors.Wrap(err, "generating key")
	}

	now := a.Clock.Now()
	session := Session{
		Key:        key,
		Username:   username,
		LastUsedAt: now,
		ExpiresAt:  now.Add(sessionDuration),
	}

	a.sessionMu.Lock()
	a.sessions[key] = session
	a.sessionMu.Unlock()

	return session, nil
}

// GetSession resolves a session key to a live session. Expired sessions are
// removed on sight.
func (a *App) GetSession(key string) (Session, bool) {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	session, ok := a.sessions[key]
	if !ok {
		return Session{}, false
	}

	if a.Clock.Now().After(session.ExpiresAt) {
		delete(a.sessions, key)
		return Session{}, false
	}

	session.LastUsedAt = a.Clock.Now()
	a.sessions[key] = session

	return session, true
}

// DeleteSession deletes the session with the given key
func (a *App) DeleteSession(key string) {
	a.sessionMu.Lock()
	delete(a.sessions, key)
	a.sessionMu.Unlock()
}

// DeleteUserSessions deletes all existing sessions for the given user. It
// effectively invalidates all existing sessions.
func (a *App) DeleteUserSessions(username string) {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	for key, session := range a.sessions {
		if session.Username == username {
			delete(a.sessions, key)
		}
	}
}

// SignIn issues a session for an authenticated user
func (a *App) SignIn(user *store.User) (Session, error) {
	session, err := a.CreateSession(user.Username)
	if err != nil {
		return Session{}, errors.Wrap(err, "creating session")
	}

	return session, nil
}
