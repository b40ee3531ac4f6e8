package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/go-cmp/cmp"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms/cmstest"
	"github.com/cheatsheethub/cheatsheethub/pkg/model"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	cms          *cmstest.Server
	instance     *ServerInstance
	config       ServerConfig
	client       *http.Client
	response     *http.Response
	responseBody []byte

	categories   map[string]model.Category
	tags         map[string]model.Tag
	cheatsheets  map[string]string // slug -> id
	sessionToken string
}

// NewStepsContext creates a new steps context
func NewStepsContext() *StepsContext {
	return &StepsContext{
		config: DefaultServerConfig(),
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		categories:  map[string]model.Category{},
		tags:        map[string]model.Tag{},
		cheatsheets: map[string]string{},
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.cms = newCMS()
		return ctx, nil
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if s.instance != nil {
			s.instance.Stop()
		}
		if s.cms != nil {
			s.cms.Close()
		}
		return ctx, nil
	})

	// Content steps
	sc.Step(`^the CMS has a category "([^"]*)" with slug "([^"]*)"$`, s.theCMSHasACategory)
	sc.Step(`^the CMS has the tags "([^"]*)"$`, s.theCMSHasTheTags)
	sc.Step(`^the CMS has the following cheatsheets:$`, s.theCMSHasTheFollowingCheatsheets)
	sc.Step(`^"([^"]*)" is related to "([^"]*)"$`, s.isRelatedTo)
	sc.Step(`^the CMS is down$`, s.theCMSIsDown)

	// Server steps
	sc.Step(`^the site is running$`, s.theSiteIsRunning)
	sc.Step(`^the site is running in "(static|session)" token mode$`, s.theSiteIsRunningInTokenMode)

	// Request steps
	sc.Step(`^I visit "([^"]*)"$`, s.iVisit)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^I should be redirected to "([^"]*)"$`, s.iShouldBeRedirectedTo)
	sc.Step(`^the page title should be "([^"]*)"$`, s.thePageTitleShouldBe)
	sc.Step(`^the page should contain "([^"]*)"$`, s.thePageShouldContain)
	sc.Step(`^the page should not contain "([^"]*)"$`, s.thePageShouldNotContain)
	sc.Step(`^the response body should be:$`, s.theResponseBodyShouldBe)

	s.registerEditorSteps(sc)
}

// Content steps

func (s *StepsContext) theCMSHasACategory(name, slug string) error {
	s.categories[slug] = s.cms.AddCategory(model.Category{Name: name, Slug: slug})
	return nil
}

func (s *StepsContext) theCMSHasTheTags(names string) error {
	for _, name := range splitList(names) {
		s.tags[name] = s.cms.AddTag(model.Tag{Name: name, Slug: name})
	}
	return nil
}

// theCMSHasTheFollowingCheatsheets seeds one cheatsheet per row. Columns:
// slug, title, status, and optionally summary, body, category, tags, owner.
func (s *StepsContext) theCMSHasTheFollowingCheatsheets(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("cheatsheet table needs a header and at least one row")
	}
	header := table.Rows[0].Cells

	for _, row := range table.Rows[1:] {
		fields := map[string]string{}
		for i, cell := range row.Cells {
			fields[header[i].Value] = cell.Value
		}

		status, err := model.StatusString(fields["status"])
		if err != nil {
			return fmt.Errorf("row %q: %w", fields["slug"], err)
		}
		sheet := model.Cheatsheet{
			Slug:        fields["slug"],
			Title:       fields["title"],
			Summary:     fields["summary"],
			Body:        strings.ReplaceAll(fields["body"], `\n`, "\n"),
			Status:      status,
			UserCreated: fields["owner"],
		}
		if slug := fields["category"]; slug != "" {
			cat, ok := s.categories[slug]
			if !ok {
				return fmt.Errorf("row %q: unknown category %q", sheet.Slug, slug)
			}
			sheet.Category = model.RefTo[model.Category](cat.ID)
		}

		var tagIDs []string
		for _, name := range splitList(fields["tags"]) {
			tag, ok := s.tags[name]
			if !ok {
				return fmt.Errorf("row %q: unknown tag %q", sheet.Slug, name)
			}
			tagIDs = append(tagIDs, tag.ID)
		}

		sheet = s.cms.AddCheatsheet(sheet, tagIDs...)
		s.cheatsheets[sheet.Slug] = sheet.ID
	}
	return nil
}

func (s *StepsContext) isRelatedTo(from, to string) error {
	fromID, err := s.cheatsheetID(from)
	if err != nil {
		return err
	}
	toID, err := s.cheatsheetID(to)
	if err != nil {
		return err
	}
	s.cms.Relate(fromID, toID)
	return nil
}

func (s *StepsContext) theCMSIsDown() error {
	s.cms.SetDown(true)
	return nil
}

// Server steps

func (s *StepsContext) theSiteIsRunning() error {
	return s.startSite()
}

func (s *StepsContext) theSiteIsRunningInTokenMode(mode string) error {
	s.config.TokenMode = mode
	return s.startSite()
}

func (s *StepsContext) startSite() error {
	instance, err := StartServer(s.cms.URL, s.config)
	if err != nil {
		return err
	}
	s.instance = instance
	return nil
}

// Request steps

func (s *StepsContext) iVisit(path string) error {
	return s.doRequest(http.MethodGet, path, "")
}

func (s *StepsContext) doRequest(method, path, body string) error {
	if s.instance == nil {
		return fmt.Errorf("the site is not running")
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.instance.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: s.instance.Server.Sessions.CookieName(), Value: s.sessionToken})
	}

	s.cms.ResetHits()
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iShouldBeRedirectedTo(location string) error {
	if s.response.StatusCode != http.StatusSeeOther {
		return fmt.Errorf("expected status %d, got %d", http.StatusSeeOther, s.response.StatusCode)
	}
	if got := s.response.Header.Get("Location"); got != location {
		return fmt.Errorf("expected redirect to %q, got %q", location, got)
	}
	return nil
}

func (s *StepsContext) thePageTitleShouldBe(title string) error {
	body := string(s.responseBody)
	start := strings.Index(body, "<title>")
	end := strings.Index(body, "</title>")
	if start < 0 || end < start {
		return fmt.Errorf("page has no title")
	}
	got := html.UnescapeString(body[start+len("<title>") : end])
	if got != title {
		return fmt.Errorf("expected title %q, got %q", title, got)
	}
	return nil
}

func (s *StepsContext) thePageShouldContain(text string) error {
	if !strings.Contains(html.UnescapeString(string(s.responseBody)), text) {
		return fmt.Errorf("expected page to contain %q", text)
	}
	return nil
}

func (s *StepsContext) thePageShouldNotContain(text string) error {
	if strings.Contains(html.UnescapeString(string(s.responseBody)), text) {
		return fmt.Errorf("expected page not to contain %q", text)
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldBe(expected *godog.DocString) error {
	var want, got any
	if err := json.Unmarshal([]byte(expected.Content), &want); err != nil {
		return fmt.Errorf("invalid expected JSON: %w", err)
	}
	if err := json.Unmarshal(s.responseBody, &got); err != nil {
		return fmt.Errorf("response is not JSON: %w: %s", err, s.responseBody)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("response body mismatch (-want +got):\n%s", diff)
	}
	return nil
}

func (s *StepsContext) cheatsheetID(slug string) (string, error) {
	id, ok := s.cheatsheets[slug]
	if !ok {
		return "", fmt.Errorf("unknown cheatsheet %q", slug)
	}
	return id, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
