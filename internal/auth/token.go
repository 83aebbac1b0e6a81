// Package auth supplies the bearer credential for the applications API.
//
// Tokens are issued elsewhere; tjt only stores and presents them. A token can
// come from configuration (static) or from a token file written by
// `tjt login`. The file is read on every request so a rotated token is picked
// up without restarting.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrNoCredential is returned when no usable bearer token is available.
var ErrNoCredential = errors.New("no API credential (run `tjt login --token <token>` or set TJT_API_TOKEN)")

// TokenFilePath returns the path to the stored token file under base.
func TokenFilePath(base string) string {
	return filepath.Join(base, "auth", "token.json")
}

// LoadToken loads a previously saved token. A missing file yields (nil, nil).
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s and log in again): %w", path, err)
	}
	return &tok, nil
}

// SaveToken atomically persists tok to path.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// RemoveToken deletes the stored token. Removing a missing file is not an error.
func RemoveToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// fileTokenSource re-reads the token file on every call.
type fileTokenSource struct {
	path string
}

// FileTokenSource returns a TokenSource backed by the token file at path.
func FileTokenSource(path string) oauth2.TokenSource {
	return &fileTokenSource{path: path}
}

func (s *fileTokenSource) Token() (*oauth2.Token, error) {
	tok, err := LoadToken(s.path)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, ErrNoCredential
	}
	if !tok.Valid() {
		return nil, fmt.Errorf("stored token expired at %s: %w",
			tok.Expiry.Format("2006-01-02 15:04"), ErrNoCredential)
	}
	return tok, nil
}

// Source describes where the active credential comes from.
type Source string

const (
	SourceStatic Source = "static"
	SourceFile   Source = "file"
)

// NewTokenSource picks the credential: a non-empty static token wins,
// otherwise the token file under base is used.
func NewTokenSource(staticToken, base string) (oauth2.TokenSource, Source) {
	if staticToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: staticToken,
			TokenType:   "Bearer",
		}), SourceStatic
	}
	return FileTokenSource(TokenFilePath(base)), SourceFile
}
