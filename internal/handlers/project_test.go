package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskhub/internal/constants"
	"taskhub/internal/models"
	"taskhub/internal/repository"
	"taskhub/internal/services"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	handler     *ProjectHandler
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Activity{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	suite.projectRepo = repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	activityRepo := repository.NewActivityRepository(suite.db)

	activityService := services.NewActivityService(activityRepo, suite.projectRepo)
	projectService := services.NewProjectService(suite.projectRepo, taskRepo, userRepo, activityService)

	suite.handler = NewProjectHandler(projectService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectHandlerTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(name string, ownerID uint64) *models.Project {
	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}
	suite.db.Create(project)
	return project
}

func (suite *ProjectHandlerTestSuite) addTestMember(projectID, userID uint64) {
	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		AddedAt:   time.Now(),
	}
	suite.db.Create(member)
}

func (suite *ProjectHandlerTestSuite) createTestTask(title string, projectID, creatorID uint64, status models.TaskStatus) *models.Task {
	task := &models.Task{
		Title:     title,
		ProjectID: projectID,
		CreatorID: creatorID,
		Priority:  models.TaskPriorityMedium,
		Status:    status,
	}
	suite.db.Create(task)
	return task
}

func (suite *ProjectHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// setProjectContext reloads the project with relations and stashes it the
// way RequireProjectAccess does.
func (suite *ProjectHandlerTestSuite) setProjectContext(c *gin.Context, projectID, userID uint64) {
	project, err := suite.projectRepo.FindByID(projectID, "Owner", "Members.User")
	suite.Require().NoError(err)
	c.Set(constants.ContextKeyProject, project)
	c.Set(constants.ContextKeyIsOwner, project.OwnerID == userID)
}

func (suite *ProjectHandlerTestSuite) loadActivities() []models.Activity {
	var activities []models.Activity
	err := suite.db.Order("id").Find(&activities).Error
	suite.Require().NoError(err)
	return activities
}

// TestListProjects_OwnedAndJoined tests that the list covers owned and
// member projects but nothing else
func (suite *ProjectHandlerTestSuite) TestListProjects_OwnedAndJoined() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	member := suite.createTestUser("Member", "member@example.com")
	outsider := suite.createTestUser("Outsider", "outsider@example.com")

	owned := suite.createTestProject("Owned", member.ID)
	joined := suite.createTestProject("Joined", owner.ID)
	suite.addTestMember(joined.ID, member.ID)
	suite.createTestProject("Foreign", outsider.ID)

	c, w := suite.createAuthContext("GET", "/api/projects", nil, member.ID)

	suite.handler.ListProjects(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	projects := response["projects"].([]interface{})
	suite.Require().Len(projects, 2)

	names := []string{
		projects[0].(map[string]interface{})["name"].(string),
		projects[1].(map[string]interface{})["name"].(string),
	}
	assert.Contains(suite.T(), names, owned.Name)
	assert.Contains(suite.T(), names, joined.Name)
}

// TestCreateProject_Success tests project creation and its audit record
func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	user := suite.createTestUser("Alice", "alice@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"name":        "Website",
		"description": "Company website rebuild",
	})

	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	project := response["project"].(map[string]interface{})
	assert.Equal(suite.T(), "Website", project["name"])
	assert.Equal(suite.T(), float64(user.ID), project["owner_id"])

	// The owner never appears in the member list
	members := project["members"].([]interface{})
	assert.Empty(suite.T(), members)

	activities := suite.loadActivities()
	suite.Require().Len(activities, 1)
	assert.Equal(suite.T(), models.ActionProjectCreated, activities[0].Action)
	assert.Equal(suite.T(), `Created project "Website"`, activities[0].Details)
	assert.Equal(suite.T(), user.ID, activities[0].UserID)
	suite.Require().NotNil(activities[0].ProjectID)
}

// TestCreateProject_ShortName tests creation with a one-character name
func (suite *ProjectHandlerTestSuite) TestCreateProject_ShortName() {
	user := suite.createTestUser("Alice", "alice@example.com")

	body, _ := json.Marshal(map[string]interface{}{"name": "X"})

	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(suite.T(), "Project name must be at least 2 characters", response["error"])

	assert.Empty(suite.T(), suite.loadActivities())
}

// TestGetProject_TaskCounts tests the detail response with grouped counts
func (suite *ProjectHandlerTestSuite) TestGetProject_TaskCounts() {
	user := suite.createTestUser("Alice", "alice@example.com")
	project := suite.createTestProject("Website", user.ID)

	suite.createTestTask("One", project.ID, user.ID, models.TaskStatusTodo)
	suite.createTestTask("Two", project.ID, user.ID, models.TaskStatusTodo)
	suite.createTestTask("Three", project.ID, user.ID, models.TaskStatusInProgress)
	suite.createTestTask("Four", project.ID, user.ID, models.TaskStatusCompleted)

	c, w := suite.createAuthContext("GET", "/api/projects/1", nil, user.ID)
	suite.setProjectContext(c, project.ID, user.ID)

	suite.handler.GetProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), true, response["is_owner"])

	counts := response["task_counts"].(map[string]interface{})
	assert.Equal(suite.T(), float64(2), counts["todo"])
	assert.Equal(suite.T(), float64(1), counts["in_progress"])
	assert.Equal(suite.T(), float64(1), counts["completed"])
}

// TestGetProject_MemberNotOwner tests the owner flag for a plain member
func (suite *ProjectHandlerTestSuite) TestGetProject_MemberNotOwner() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	member := suite.createTestUser("Member", "member@example.com")
	project := suite.createTestProject("Website", owner.ID)
	suite.addTestMember(project.ID, member.ID)

	c, w := suite.createAuthContext("GET", "/api/projects/1", nil, member.ID)
	suite.setProjectContext(c, project.ID, member.ID)

	suite.handler.GetProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(suite.T(), false, response["is_owner"])
}

// TestUpdateProject_Success tests a partial update and its audit record
func (suite *ProjectHandlerTestSuite) TestUpdateProject_Success() {
	user := suite.createTestUser("Alice", "alice@example.com")
	project := suite.createTestProject("Old Name", user.ID)

	body, _ := json.Marshal(map[string]interface{}{"name": "New Name"})

	c, w := suite.createAuthContext("PUT", "/api/projects/1", body, user.ID)
	suite.setProjectContext(c, project.ID, user.ID)

	suite.handler.UpdateProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	updated := response["project"].(map[string]interface{})
	assert.Equal(suite.T(), "New Name", updated["name"])

	activities := suite.loadActivities()
	suite.Require().Len(activities, 1)
	assert.Equal(suite.T(), models.ActionProjectUpdated, activities[0].Action)
}

// TestDeleteProject_CascadeScoped tests that deletion removes the project's
// tasks and member rows without touching other projects, and that existing
// activity rows survive with their dangling project reference
func (suite *ProjectHandlerTestSuite) TestDeleteProject_CascadeScoped() {
	user := suite.createTestUser("Alice", "alice@example.com")
	member := suite.createTestUser("Bob", "bob@example.com")

	doomed := suite.createTestProject("Doomed", user.ID)
	survivor := suite.createTestProject("Survivor", user.ID)
	suite.addTestMember(doomed.ID, member.ID)

	suite.createTestTask("Doomed Task", doomed.ID, user.ID, models.TaskStatusTodo)
	keep := suite.createTestTask("Kept Task", survivor.ID, user.ID, models.TaskStatusTodo)

	// Existing audit history referencing the doomed project
	prior := &models.Activity{
		UserID:    user.ID,
		Action:    models.ActionTaskCreated,
		ProjectID: &doomed.ID,
		Details:   `Created task "Doomed Task"`,
	}
	suite.db.Create(prior)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1", nil, user.ID)
	suite.setProjectContext(c, doomed.ID, user.ID)

	suite.handler.DeleteProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Project{}).Where("id = ?", doomed.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	suite.db.Model(&models.Task{}).Where("project_id = ?", doomed.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	suite.db.Model(&models.ProjectMember{}).Where("project_id = ?", doomed.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	// The sibling project and its task are untouched
	suite.db.Model(&models.Task{}).Where("id = ?", keep.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	activities := suite.loadActivities()
	suite.Require().Len(activities, 2)

	// Prior history survives with its dangling reference
	assert.Equal(suite.T(), models.ActionTaskCreated, activities[0].Action)
	suite.Require().NotNil(activities[0].ProjectID)
	assert.Equal(suite.T(), doomed.ID, *activities[0].ProjectID)

	// The deletion record itself carries no project reference
	assert.Equal(suite.T(), models.ActionProjectDeleted, activities[1].Action)
	assert.Nil(suite.T(), activities[1].ProjectID)
	assert.Equal(suite.T(), `Deleted project "Doomed"`, activities[1].Details)
}

// TestAddMember_Success tests adding a member by email
func (suite *ProjectHandlerTestSuite) TestAddMember_Success() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	invitee := suite.createTestUser("Bob", "bob@example.com")
	project := suite.createTestProject("Website", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"email": "bob@example.com"})

	c, w := suite.createAuthContext("POST", "/api/projects/1/members", body, owner.ID)
	suite.setProjectContext(c, project.ID, owner.ID)

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	updated := response["project"].(map[string]interface{})
	members := updated["members"].([]interface{})
	suite.Require().Len(members, 1)
	assert.Equal(suite.T(), float64(invitee.ID), members[0].(map[string]interface{})["id"])

	activities := suite.loadActivities()
	suite.Require().Len(activities, 1)
	assert.Equal(suite.T(), models.ActionMemberAdded, activities[0].Action)
	assert.Equal(suite.T(), `Added "Bob" to project "Website"`, activities[0].Details)
}

// TestAddMember_Owner tests that the owner cannot be added as a member
func (suite *ProjectHandlerTestSuite) TestAddMember_Owner() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	project := suite.createTestProject("Website", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"email": "owner@example.com"})

	c, w := suite.createAuthContext("POST", "/api/projects/1/members", body, owner.ID)
	suite.setProjectContext(c, project.ID, owner.ID)

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(suite.T(), "Owner is already part of the project", response["error"])
}

// TestAddMember_Duplicate tests adding a user who is already a member
func (suite *ProjectHandlerTestSuite) TestAddMember_Duplicate() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	member := suite.createTestUser("Bob", "bob@example.com")
	project := suite.createTestProject("Website", owner.ID)
	suite.addTestMember(project.ID, member.ID)

	body, _ := json.Marshal(map[string]interface{}{"email": "bob@example.com"})

	c, w := suite.createAuthContext("POST", "/api/projects/1/members", body, owner.ID)
	suite.setProjectContext(c, project.ID, owner.ID)

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(suite.T(), "User is already a member", response["error"])
}

// TestAddMember_UnknownEmail tests adding an email with no account
func (suite *ProjectHandlerTestSuite) TestAddMember_UnknownEmail() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	project := suite.createTestProject("Website", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"email": "nobody@example.com"})

	c, w := suite.createAuthContext("POST", "/api/projects/1/members", body, owner.ID)
	suite.setProjectContext(c, project.ID, owner.ID)

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(suite.T(), "User not found", response["error"])
}

// TestAddMember_EmptyEmail tests the missing-email validation
func (suite *ProjectHandlerTestSuite) TestAddMember_EmptyEmail() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	project := suite.createTestProject("Website", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"email": ""})

	c, w := suite.createAuthContext("POST", "/api/projects/1/members", body, owner.ID)
	suite.setProjectContext(c, project.ID, owner.ID)

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(suite.T(), "Email is required", response["error"])
}

// TestRemoveMember_Success tests removing a member by user ID
func (suite *ProjectHandlerTestSuite) TestRemoveMember_Success() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	member := suite.createTestUser("Bob", "bob@example.com")
	project := suite.createTestProject("Website", owner.ID)
	suite.addTestMember(project.ID, member.ID)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1/members/2", nil, owner.ID)
	c.Params = gin.Params{{Key: "user_id", Value: "2"}}
	suite.setProjectContext(c, project.ID, owner.ID)

	suite.handler.RemoveMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.ProjectMember{}).Where("project_id = ? AND user_id = ?", project.ID, member.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	activities := suite.loadActivities()
	suite.Require().Len(activities, 1)
	assert.Equal(suite.T(), models.ActionMemberRemoved, activities[0].Action)
}

// TestRemoveMember_NotMember tests removing a user who is not a member
func (suite *ProjectHandlerTestSuite) TestRemoveMember_NotMember() {
	owner := suite.createTestUser("Owner", "owner@example.com")
	stranger := suite.createTestUser("Stranger", "stranger@example.com")
	project := suite.createTestProject("Website", owner.ID)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1/members/2", nil, owner.ID)
	c.Params = gin.Params{{Key: "user_id", Value: strconv.FormatUint(stranger.ID, 10)}}
	suite.setProjectContext(c, project.ID, owner.ID)

	suite.handler.RemoveMember(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(suite.T(), "Member not found", response["error"])
}

// TestSuite runs the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
