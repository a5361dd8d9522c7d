package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/alexanderramin/kairos-gantt/internal/service"
	"github.com/alexanderramin/kairos-gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	itemRepo := repository.NewSQLiteItemRepo(database)
	orderRepo := repository.NewSQLiteOrderRepo(database)

	return &App{
		Items:    service.NewItemService(itemRepo),
		Timeline: service.NewTimelineService(itemRepo, orderRepo, nil),
		Import:   service.NewImportService(testutil.NewTestUoW(database)),
		UserID:   "u1",
		Kind:     domain.ResourceTasks,
		Now:      func() time.Time { return fixedNow },
	}
}

// seedItems creates project P (Mar 1..20), task T1 (created Mar 2, due
// Mar 6), its subtask T2 and T3 created in late April.
func seedItems(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()

	items := []*domain.RawItem{
		testutil.NewTestProject("Launch", testutil.WithID("P"),
			testutil.WithRange(testutil.Date(2024, time.March, 1), testutil.Date(2024, time.March, 20))),
		testutil.NewTestTask("Design", testutil.WithID("T1"),
			testutil.WithCreatedAt(testutil.Date(2024, time.March, 2)),
			testutil.WithDueDate(testutil.Date(2024, time.March, 6)),
			testutil.WithAssignees("ana")),
		testutil.NewTestTask("Sketches", testutil.WithID("T2"),
			testutil.WithParent("T1"),
			testutil.WithCreatedAt(testutil.Date(2024, time.March, 3))),
		testutil.NewTestTask("Rollout", testutil.WithID("T3"),
			testutil.WithCreatedAt(testutil.Date(2024, time.April, 20))),
	}
	for _, it := range items {
		require.NoError(t, app.Items.Create(ctx, it))
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func currentOrder(t *testing.T, app *App) []string {
	t.Helper()
	resp, err := app.Timeline.View(context.Background(), app.timelineRequest(nil))
	require.NoError(t, err)
	return resp.Order
}

// --- item ---

func TestItemAdd_TaskWithDatesAndAssignees(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "item", "add", "Write docs",
		"--start", "2024-03-04", "--end", "2024-03-08", "--assignee", "ana,bo")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "Write docs")

	items, err := app.Items.List(context.Background(), repository.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	it := items[0]
	assert.True(t, it.IsTask)
	require.NotNil(t, it.StartDate)
	assert.Equal(t, "2024-03-04", it.StartDate.Format("2006-01-02"))
	require.NotNil(t, it.EndDate)
	assert.Equal(t, "2024-03-08", it.EndDate.Format("2006-01-02"))
	assert.Equal(t, []string{"ana", "bo"}, it.Assignees)
}

func TestItemAdd_ProjectDatesGoToKickoffAndClose(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "item", "add", "Launch", "--type", "project",
		"--start", "2024-03-01", "--end", "2024-03-31")
	require.NoError(t, err)

	items, err := app.Items.List(context.Background(), repository.ItemFilter{Kind: domain.ResourceProjects})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].StartDate)
	require.NotNil(t, items[0].KickoffDate)
	require.NotNil(t, items[0].CloseDate)
}

func TestItemAdd_ParentByPrefix(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	_, err := executeCmd(t, app, "item", "add", "Mockups", "--parent", "T1")
	require.NoError(t, err)

	items, err := app.Items.List(context.Background(), repository.ItemFilter{Kind: domain.ResourceTasks})
	require.NoError(t, err)
	var found bool
	for _, it := range items {
		if it.Name == "Mockups" {
			found = true
			require.NotNil(t, it.ParentID)
			assert.Equal(t, "T1", *it.ParentID)
		}
	}
	assert.True(t, found)
}

func TestItemAdd_Errors(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing name", []string{"item", "add"}, "item name is required"},
		{"bad type", []string{"item", "add", "X", "--type", "epic"}, "invalid --type"},
		{"bad date", []string{"item", "add", "X", "--start", "03/04/2024"}, "invalid --start date"},
		{"unknown parent", []string{"item", "add", "X", "--parent", "nope"}, "item not found"},
		{"ambiguous parent", []string{"item", "add", "X", "--parent", "T"}, "ambiguous"},
		{"project with parent", []string{"item", "add", "X", "--type", "project", "--parent", "T1"}, "projects cannot have a parent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, app, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestItemList_FiltersAndColumns(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	out, err := executeCmd(t, app, "item", "list", "--type", "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "ASSIGNEES")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "@ana")
	assert.Contains(t, out, "Mar 6")
	assert.NotContains(t, out, "Launch")

	_, err = executeCmd(t, app, "item", "done", "T3")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "item", "list", "--open")
	require.NoError(t, err)
	assert.NotContains(t, out, "Rollout")
	assert.Contains(t, out, "Launch")
}

func TestItemList_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "item", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No items found.")
}

func TestItemTree_ShowsHierarchy(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	out, err := executeCmd(t, app, "item", "tree")
	require.NoError(t, err)

	design := strings.Index(out, "Design")
	sketches := strings.Index(out, "Sketches")
	require.GreaterOrEqual(t, design, 0)
	require.GreaterOrEqual(t, sketches, 0)
	assert.Less(t, design, sketches)
	assert.Contains(t, out, "Rollout")
	assert.NotContains(t, out, "Launch")
	assert.Contains(t, out, "(est.)")
}

func TestItemAssignAndRemove(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)
	ctx := context.Background()

	out, err := executeCmd(t, app, "item", "assign", "T3", "cy", "dee")
	require.NoError(t, err)
	assert.Contains(t, out, "@cy @dee")

	it, err := app.Items.GetByID(ctx, "T3")
	require.NoError(t, err)
	assert.Equal(t, []string{"cy", "dee"}, it.Assignees)

	out, err = executeCmd(t, app, "item", "assign", "T3")
	require.NoError(t, err)
	assert.Contains(t, out, "nobody")

	_, err = executeCmd(t, app, "item", "rm", "T3")
	require.NoError(t, err)
	_, err = app.Items.GetByID(ctx, "T3")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- show ---

func TestShow_CurrentHalf(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	out, err := executeCmd(t, app, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "MARCH 2024, FIRST HALF")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Sketches")
	assert.Contains(t, out, "@ana")
	assert.NotContains(t, out, "Rollout")
	assert.NotContains(t, out, "Launch")
}

func TestShow_Navigation(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	out, err := executeCmd(t, app, "show", "--next")
	require.NoError(t, err)
	assert.Contains(t, out, "MARCH 2024, SECOND HALF")
	assert.Contains(t, out, "No items in this window.")

	out, err = executeCmd(t, app, "show", "--month", "2024-04", "--half", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "APRIL 2024, SECOND HALF")
	assert.Contains(t, out, "Rollout")

	out, err = executeCmd(t, app, "show", "--month", "2024-04", "--prev")
	require.NoError(t, err)
	assert.Contains(t, out, "MARCH 2024, SECOND HALF")
}

func TestShow_ProjectsKind(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	out, err := executeCmd(t, app, "--kind", "projects", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch")
	assert.NotContains(t, out, "Design")
}

func TestShow_Collapse(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	out, err := executeCmd(t, app, "show", "--collapse", "T1")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "1 subtasks")
	assert.NotContains(t, out, "Sketches")
}

func TestShow_FlagErrors(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"exclusive nav", []string{"show", "--next", "--prev"}, "none of the others can be"},
		{"bad half", []string{"show", "--half", "3"}, "invalid half"},
		{"bad month", []string{"show", "--month", "March"}, "INVALID_MONTH"},
		{"bad kind", []string{"--kind", "epics", "show"}, "unknown resource kind"},
		{"unknown collapse id", []string{"show", "--collapse", "zzz"}, "item not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, app, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// --- move / order ---

func TestMove_PersistsOrderPerUser(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	assert.Equal(t, []string{"T1", "T2"}, currentOrder(t, app))

	out, err := executeCmd(t, app, "move", "T2", "T1")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved")
	assert.Less(t, strings.Index(out, "Sketches"), strings.Index(out, "Design"))

	assert.Equal(t, []string{"T2", "T1"}, currentOrder(t, app))

	_, err = executeCmd(t, app, "--user", "u2", "order", "show")
	require.NoError(t, err)
	app.UserID = "u2"
	assert.Equal(t, []string{"T1", "T2"}, currentOrder(t, app))
}

func TestMove_OutsideWindowIsNoOp(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	out, err := executeCmd(t, app, "move", "T3", "T1")
	require.NoError(t, err)
	assert.Contains(t, out, "Order unchanged")
	assert.Equal(t, []string{"T1", "T2"}, currentOrder(t, app))
}

func TestOrderShowAndReset(t *testing.T) {
	app := testApp(t)
	seedItems(t, app)

	_, err := executeCmd(t, app, "move", "T2", "T1")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "order", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "TASKS/U1")
	assert.Less(t, strings.Index(out, "Sketches"), strings.Index(out, "Design"))

	out, err = executeCmd(t, app, "order", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Order reset for tasks/u1")
	assert.Equal(t, []string{"T1", "T2"}, currentOrder(t, app))
}

// --- import ---

func TestImport_YAMLFile(t *testing.T) {
	app := testApp(t)

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`items:
  - ref: launch
    kind: project
    name: Launch
    start_date: "2024-03-01"
    end_date: "2024-03-20"
  - ref: design
    kind: task
    name: Design
    project_ref: launch
    start_date: "2024-03-02"
    end_date: "2024-03-06"
    assignees: [ana]
  - ref: sketches
    kind: task
    name: Sketches
    parent_ref: design
    created_at: "2024-03-03"
`), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 tasks and 1 projects (1 assignees)")

	out, err = executeCmd(t, app, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Sketches")
}

func TestImport_MissingFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}

func TestTUI_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
