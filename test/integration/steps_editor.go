package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/cucumber/godog"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/cms/cmstest"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

func (s *StepsContext) registerEditorSteps(sc *godog.ScenarioContext) {
	// Session steps
	sc.Step(`^I am signed in as "([^"]*)"$`, s.iAmSignedInAs)
	sc.Step(`^I sign in through the callback as "([^"]*)"$`, s.iSignInThroughTheCallbackAs)
	sc.Step(`^I sign out$`, s.iSignOut)

	// API steps
	sc.Step(`^I send a (GET|POST|PATCH|DELETE) request to "([^"]*)"$`, s.iSendARequestTo)
	sc.Step(`^I send a (POST|PATCH) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)
	sc.Step(`^I (GET|DELETE) the cheatsheet "([^"]*)"$`, s.iRequestTheCheatsheet)
	sc.Step(`^I PATCH the cheatsheet "([^"]*)" with body:$`, s.iPatchTheCheatsheet)
	sc.Step(`^I open the editor for "([^"]*)"$`, s.iOpenTheEditorFor)

	// Assertions
	sc.Step(`^the JSON response field "([^"]*)" should be "([^"]*)"$`, s.theJSONResponseFieldShouldBe)
	sc.Step(`^the JSON response should list the cheatsheets "([^"]*)"$`, s.theJSONResponseShouldListTheCheatsheets)
	sc.Step(`^the CMS should have a cheatsheet "([^"]*)" with status "([^"]*)"$`, s.theCMSShouldHaveACheatsheetWithStatus)
	sc.Step(`^the CMS should not have a cheatsheet "([^"]*)"$`, s.theCMSShouldNotHaveACheatsheet)
	sc.Step(`^the CMS should have received no requests$`, s.theCMSShouldHaveReceivedNoRequests)
}

// cmsToken is the CMS access token of a non-admin CMS user.
func cmsToken(user string) string {
	return "cms-token-" + user
}

func (s *StepsContext) issueSession(user string) (string, error) {
	if s.instance == nil {
		return "", fmt.Errorf("the site is not running")
	}
	s.cms.AddUser(cmstest.User{ID: user, Token: cmsToken(user)})
	token, _, err := s.instance.Server.Sessions.Issue(session.Session{
		UserID:   user,
		Name:     user,
		CMSToken: cmsToken(user),
	})
	return token, err
}

// Session steps

func (s *StepsContext) iAmSignedInAs(user string) error {
	token, err := s.issueSession(user)
	if err != nil {
		return err
	}
	s.sessionToken = token
	return nil
}

func (s *StepsContext) iSignInThroughTheCallbackAs(user string) error {
	token, err := s.issueSession(user)
	if err != nil {
		return err
	}
	if err := s.doRequest(http.MethodGet, "/auth/callback?token="+url.QueryEscape(token), ""); err != nil {
		return err
	}
	for _, c := range s.response.Cookies() {
		if c.Name == s.instance.Server.Sessions.CookieName() {
			s.sessionToken = c.Value
			return nil
		}
	}
	return fmt.Errorf("callback did not set the session cookie (status %d)", s.response.StatusCode)
}

func (s *StepsContext) iSignOut() error {
	if err := s.doRequest(http.MethodPost, "/auth/signout", ""); err != nil {
		return err
	}
	for _, c := range s.response.Cookies() {
		if c.Name == s.instance.Server.Sessions.CookieName() && c.MaxAge < 0 {
			s.sessionToken = ""
			return nil
		}
	}
	return fmt.Errorf("sign out did not clear the session cookie")
}

// API steps

func (s *StepsContext) iSendARequestTo(method, path string) error {
	return s.doRequest(method, path, "")
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.doRequest(method, path, body.Content)
}

func (s *StepsContext) iRequestTheCheatsheet(method, slug string) error {
	id, err := s.cheatsheetID(slug)
	if err != nil {
		return err
	}
	return s.doRequest(method, "/api/cheatsheets/"+id, "")
}

func (s *StepsContext) iPatchTheCheatsheet(slug string, body *godog.DocString) error {
	id, err := s.cheatsheetID(slug)
	if err != nil {
		return err
	}
	return s.doRequest(http.MethodPatch, "/api/cheatsheets/"+id, body.Content)
}

func (s *StepsContext) iOpenTheEditorFor(slug string) error {
	id, err := s.cheatsheetID(slug)
	if err != nil {
		return err
	}
	return s.doRequest(http.MethodGet, "/editor/"+id, "")
}

// Assertions

func (s *StepsContext) theJSONResponseFieldShouldBe(field, expected string) error {
	var body map[string]any
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("response is not a JSON object: %w: %s", err, s.responseBody)
	}
	value, ok := body[field]
	if !ok {
		return fmt.Errorf("response has no field %q: %s", field, s.responseBody)
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *StepsContext) theJSONResponseShouldListTheCheatsheets(slugs string) error {
	var sheets []struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(s.responseBody, &sheets); err != nil {
		return fmt.Errorf("response is not a JSON list: %w: %s", err, s.responseBody)
	}

	got := make([]string, len(sheets))
	for i, sheet := range sheets {
		got[i] = sheet.Slug
	}
	want := splitList(slugs)
	sort.Strings(got)
	sort.Strings(want)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected cheatsheets %v, got %v", want, got)
	}
	return nil
}

// lookupCheatsheet reads a cheatsheet by slug with the admin token,
// bypassing the site.
func (s *StepsContext) lookupCheatsheet(slug string) (map[string]any, bool, error) {
	client, err := cms.New(s.cms.URL, cms.WithToken(staticToken))
	if err != nil {
		return nil, false, err
	}
	rows, err := cms.ReadItems[map[string]any](context.Background(), client, "cheatsheets", cms.Query{
		Fields: []string{"id", "slug", "status", "user_created"},
		Filter: cms.Where("slug", cms.Eq(slug)),
	})
	if err != nil || len(rows) == 0 {
		return nil, false, err
	}
	return rows[0], true, nil
}

func (s *StepsContext) theCMSShouldHaveACheatsheetWithStatus(slug, status string) error {
	row, ok, err := s.lookupCheatsheet(slug)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cheatsheet %q not found in the CMS", slug)
	}
	if got := fmt.Sprint(row["status"]); got != status {
		return fmt.Errorf("expected %q to have status %q, got %q", slug, status, got)
	}
	return nil
}

func (s *StepsContext) theCMSShouldNotHaveACheatsheet(slug string) error {
	_, ok, err := s.lookupCheatsheet(slug)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("cheatsheet %q still exists in the CMS", slug)
	}
	return nil
}

func (s *StepsContext) theCMSShouldHaveReceivedNoRequests() error {
	if hits := s.cms.Hits(); hits != 0 {
		return fmt.Errorf("expected no CMS requests, got %d", hits)
	}
	return nil
}
