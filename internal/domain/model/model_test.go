package model_test

import (
	"testing"

	"github.com/okian/floww/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEmployee(t *testing.T) {
	Convey("Given an employee", t, func() {
		e := model.Employee{
			ID:    "e1",
			Name:  "John Doe",
			Tasks: []model.Task{{ID: "t1", Status: model.TaskPending}},
		}

		Convey("Then initials come from each name part", func() {
			So(e.Initials(), ShouldEqual, "JD")
			So(model.Employee{Name: "  Émile   van der Berg "}.Initials(), ShouldEqual, "ÉvdB")
			So(model.Employee{}.Initials(), ShouldEqual, "")
		})

		Convey("When cloning", func() {
			c := e.Clone()
			c.Tasks[0].Status = model.TaskVerified

			Convey("Then the original tasks are untouched", func() {
				So(e.Tasks[0].Status, ShouldEqual, model.TaskPending)
			})
		})

		Convey("When cloning an employee without tasks", func() {
			c := model.Employee{ID: "e5"}.Clone()

			Convey("Then tasks is an empty, non-nil slice", func() {
				So(c.Tasks, ShouldNotBeNil)
				So(c.Tasks, ShouldBeEmpty)
			})
		})
	})
}

func TestTeamAndProjectClone(t *testing.T) {
	Convey("Given a team and a project", t, func() {
		team := model.Team{ID: "team1", EmployeeIDs: []string{"e1", "e3"}}
		project := model.Project{ID: "p1", Documents: []string{"specs.pdf"}}

		Convey("When their clones are modified", func() {
			tc := team.Clone()
			tc.EmployeeIDs[0] = "e9"
			pc := project.Clone()
			pc.Documents[0] = "other.pdf"

			Convey("Then the originals are unchanged", func() {
				So(team.EmployeeIDs[0], ShouldEqual, "e1")
				So(project.Documents[0], ShouldEqual, "specs.pdf")
			})
		})
	})
}

func TestEnums(t *testing.T) {
	Convey("Given the enumerations", t, func() {
		So(model.TaskVerified.Valid(), ShouldBeTrue)
		So(model.TaskStatus("done").Valid(), ShouldBeFalse)
		So(model.ProjectInProgress.Valid(), ShouldBeTrue)
		So(model.ProjectStatus("verified").Valid(), ShouldBeFalse)
		So(model.PriorityLow.Valid(), ShouldBeTrue)
		So(model.Priority("urgent").Valid(), ShouldBeFalse)
		So(model.TagResearch.Valid(), ShouldBeTrue)
		So(model.Tag("").Valid(), ShouldBeFalse)
	})
}
