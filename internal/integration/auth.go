// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package integration

import "github.com/sasha-s/go-deadlock"

// AuthState holds the session credentials. It is written by the login task
// and read by every authenticated request, so it is safe for concurrent use.
type AuthState struct {
	mu           deadlock.RWMutex
	token        string
	refreshToken string
	user         *UserInfo
}

// Token returns the bearer token, if logged in.
func (a *AuthState) Token() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token, a.token != ""
}

// RefreshToken returns the refresh token, if any.
func (a *AuthState) RefreshToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.refreshToken
}

// User returns the logged-in user.
func (a *AuthState) User() (UserInfo, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return UserInfo{}, false
	}
	return *a.user, true
}

// IsAuthenticated reports whether a token is held.
func (a *AuthState) IsAuthenticated() bool {
	_, ok := a.Token()
	return ok
}

func (a *AuthState) set(resp AuthResponse) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = resp.Token
	a.refreshToken = resp.RefreshToken
	u := resp.User
	a.user = &u
}

// Clear forgets all credentials.
func (a *AuthState) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.refreshToken = ""
	a.user = nil
}
