package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notepid/roomielink/internal/user"
)

// cli runs commands against one config file, like separate invocations of
// the binary sharing a database.
type cli struct {
	t      *testing.T
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`app:
  debug: false
paths:
  data: %q
  database: %q
auth:
  bcrypt_cost: 4
chat:
  reply_delay: 20ms
`, dir, filepath.Join(dir, "roomielink.db"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return &cli{t: t, config: path}
}

func (c *cli) run(args ...string) (string, error) {
	var out bytes.Buffer
	err := run(append([]string{"--config", c.config}, args...), &out)
	return out.String(), err
}

func (c *cli) ok(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "roomielink %s", strings.Join(args, " "))
	return out
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--help"}, &out))
	assert.Contains(t, out.String(), "register-student")
	assert.Contains(t, out.String(), "delete-conversation")

	c := newCLI(t)
	_, err := c.run("frobnicate")
	assert.ErrorContains(t, err, "unknown command")
}

func TestMissingExplicitConfig(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "whoami"}, &out)
	assert.Error(t, err)
}

func TestStudentFlow(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("whoami")
	assert.ErrorIs(t, err, user.ErrNotLoggedIn)

	out := c.ok("register-student", "--username", "alice", "--password", "secret1",
		"--email", "alice@mit.edu", "--name", "Alice Kim", "--university", "mit")
	assert.Contains(t, out, "Welcome Alice Kim")

	out = c.ok("whoami")
	assert.Contains(t, out, "Welcome, Alice!")
	assert.Contains(t, out, "MIT")

	out = c.ok("posts", "--university", "mit")
	assert.Contains(t, out, "Found 2 roommate posts")

	out = c.ok("post", "--content", "Looking for a quiet roommate", "--city", "boston",
		"--university", "mit", "--locality", "Back Bay", "--price", "800-1200",
		"--room-type", "private", "--gender", "female", "--food", "vegetarian")
	assert.Contains(t, out, "Post #1000 created")

	out = c.ok("posts", "--mine")
	assert.Contains(t, out, "Found 1 roommate posts")
	assert.Contains(t, out, "boston/back-bay")

	out = c.ok("posts", "--locality", "back bay", "--university", "mit")
	assert.Contains(t, out, "Found 2 roommate posts")
	assert.Contains(t, out, "Filtered by locality=back-bay, university=mit")

	assert.Contains(t, c.ok("save", "9"), "Post saved!")
	assert.Contains(t, c.ok("save", "9"), "already saved")
	out = c.ok("saved")
	assert.Contains(t, out, "1 saved posts")
	assert.Contains(t, out, "#9")
	assert.Contains(t, c.ok("unsave", "9"), "removed")
	assert.Contains(t, c.ok("saved"), "No saved posts yet.")

	assert.Contains(t, c.ok("delete-post", "1000"), "deleted")
	assert.Contains(t, c.ok("posts", "--mine"), "No roommate posts found")

	_, err = c.run("stats")
	assert.ErrorIs(t, err, user.ErrWrongPartition)

	assert.Contains(t, c.ok("logout"), "Logged out")
	_, err = c.run("posts")
	assert.ErrorIs(t, err, user.ErrNotLoggedIn)

	_, err = c.run("login", "--username", "alice", "--password", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredential)
	assert.Contains(t, c.ok("login", "--username", "alice", "--password", "secret1"), "Welcome back, Alice Kim!")
}

func TestLandlordAndApplicationFlow(t *testing.T) {
	c := newCLI(t)

	c.ok("register-landlord", "--username", "lee", "--password", "secret1",
		"--email", "lee@parkhomes.com", "--name", "Lee Park", "--company", "Park Homes")

	out := c.ok("listing", "--title", "Sunny Studio", "--price", "$900/month",
		"--address", "1 Main St", "--city", "boston", "--locality", "Fenway", "--bathrooms", "1.5")
	assert.Contains(t, out, "Listing #1000 created")

	out = c.ok("listings")
	assert.Contains(t, out, "Sunny Studio")
	assert.Contains(t, out, "1.5 BA")

	out = c.ok("stats")
	assert.Contains(t, out, "Active listings:    4")
	assert.Contains(t, out, "Total applications: 5")

	out = c.ok("applications", "--status", "pending")
	assert.Contains(t, out, "3 pending applications")

	c.ok("logout")
	c.ok("register-student", "--username", "bo", "--password", "secret1",
		"--email", "bo@bu.edu", "--name", "Bo Chen", "--university", "bu")

	out = c.ok("listings", "--city", "boston", "--locality", "fenway")
	assert.Contains(t, out, "Sunny Studio")

	out = c.ok("apply", "--message", "I'd love to rent this", "--budget", "$900", "1000")
	assert.Contains(t, out, "Application #1000 sent for Sunny Studio")

	c.ok("logout")
	c.ok("login", "--as", "landlord", "--username", "lee", "--password", "secret1")

	out = c.ok("applications", "--status", "pending")
	assert.Contains(t, out, "4 pending applications")
	assert.Contains(t, out, "Bo Chen")

	assert.Contains(t, c.ok("approve", "1000"), "Application from Bo Chen approved!")
	_, err := c.run("reject", "1000")
	assert.Error(t, err, "a reviewed application cannot change again")

	assert.Contains(t, c.ok("listing-status", "1000", "inactive"), "now inactive")
	assert.Contains(t, c.ok("listings", "--status", "inactive"), "Sunny Studio")
	assert.Contains(t, c.ok("delete-listing", "1000"), "deleted")
	assert.NotContains(t, c.ok("listings"), "Sunny Studio")
}

func TestConversationFlow(t *testing.T) {
	c := newCLI(t)
	c.ok("register-student", "--username", "alice", "--password", "secret1",
		"--email", "alice@mit.edu", "--name", "Alice Kim", "--university", "mit")

	assert.Contains(t, c.ok("conversations"), "No conversations yet.")

	_, err := c.run("send", "hello")
	assert.ErrorContains(t, err, "choose a recipient")

	out := c.ok("send", "--post", "1", "--wait", "Is the room still available?")
	assert.Contains(t, out, "Message sent to")
	assert.Contains(t, out, "still available")

	out = c.ok("conversations")
	assert.Contains(t, out, "1 conversations, 1 unread")
	assert.Contains(t, out, "* demo:")

	id := ""
	for _, f := range strings.Fields(out) {
		if strings.HasPrefix(f, "demo:") {
			id = f
			break
		}
	}
	require.NotEmpty(t, id)

	out = c.ok("conversation", id)
	assert.Contains(t, out, "I'm interested in your roommate post.")
	assert.Contains(t, out, "Is the room still available?")
	assert.Contains(t, c.ok("conversations"), "0 unread")

	assert.Contains(t, c.ok("delete-conversation", id), "deleted")
	assert.Contains(t, c.ok("conversations"), "No conversations yet.")
	_, err = c.run("conversation", id)
	assert.Error(t, err)
}

func TestLanding(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.ok("welcome"), "Are you a student or a landlord?")
	assert.Contains(t, c.ok("choose", "landlord"), "Continuing as landlord")
	assert.Contains(t, c.ok("welcome"), "Continue as landlord?")

	_, err := c.run("choose", "admin")
	assert.Error(t, err)
}
