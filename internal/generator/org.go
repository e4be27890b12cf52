package generator

import (
	"fmt"

	"github.com/noah-isme/edu-fixtures/internal/models"
	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

var rolePermissionNames = map[string][]string{
	"student":    {"view_schedule", "register_course", "view_grades", "pay_tuition"},
	"instructor": {"view_schedule", "submit_grades", "upload_documents", "submit_exam_entries"},
	"admin":      {"manage_users", "approve_grades", "manage_notifications", "manage_regulations"},
}

// buildRoles emits roles, permissions and their join rows.
func (g *Generator) buildRoles() error {
	permissionIDs := make(map[string]string)
	for _, roleName := range []string{"student", "instructor", "admin"} {
		role := models.Role{
			ID:          g.ids.Next(),
			Name:        roleName,
			Description: fmt.Sprintf("Default %s role", roleName),
		}
		g.world.Roles = append(g.world.Roles, role)

		for _, permName := range rolePermissionNames[roleName] {
			permID, seen := permissionIDs[permName]
			if !seen {
				permID = g.ids.Next()
				permissionIDs[permName] = permID
				g.world.Permissions = append(g.world.Permissions, models.Permission{
					ID:       permID,
					Name:     permName,
					IsActive: true,
				})
			}
			g.world.RolePermissions = append(g.world.RolePermissions, models.RolePermission{
				RoleID:       role.ID,
				PermissionID: permID,
			})
		}
	}

	roleRows := make([][]any, 0, len(g.world.Roles))
	for _, r := range g.world.Roles {
		roleRows = append(roleRows, []any{r.ID, r.Name, r.Description})
	}
	if err := g.sink.Insert("roles", []string{"id", "name", "description"}, roleRows); err != nil {
		return err
	}

	permRows := make([][]any, 0, len(g.world.Permissions))
	for _, p := range g.world.Permissions {
		permRows = append(permRows, []any{p.ID, p.Name, p.IsActive})
	}
	if err := g.sink.Insert("permissions", []string{"id", "name", "is_active"}, permRows); err != nil {
		return err
	}

	joinRows := make([][]any, 0, len(g.world.RolePermissions))
	for _, rp := range g.world.RolePermissions {
		joinRows = append(joinRows, []any{rp.RoleID, rp.PermissionID})
	}
	return g.sink.Insert("role_permissions", []string{"role_id", "permission_id"}, joinRows)
}

func (g *Generator) roleByName(name string) *models.Role {
	for i := range g.world.Roles {
		if g.world.Roles[i].Name == name {
			return &g.world.Roles[i]
		}
	}
	return nil
}

// buildOrg emits faculties, departments and training systems.
func (g *Generator) buildOrg() error {
	facultyIDs := make(map[string]string)
	for _, f := range g.cfg.Faculties {
		faculty := models.Faculty{ID: g.ids.Next(), Code: f.Code, Name: f.Name}
		facultyIDs[f.Code] = faculty.ID
		g.world.Faculties = append(g.world.Faculties, faculty)
	}

	for _, d := range g.cfg.Departments {
		facultyID, ok := facultyIDs[d.FacultyCode]
		if !ok {
			return appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("department %s references unknown faculty %s", d.Code, d.FacultyCode))
		}
		g.world.Departments = append(g.world.Departments, models.Department{
			ID:        g.ids.Next(),
			FacultyID: facultyID,
			Code:      d.Code,
			Name:      d.Name,
		})
	}

	for _, ts := range g.cfg.TrainingSystems {
		g.world.TrainingSystems = append(g.world.TrainingSystems, models.TrainingSystem{
			ID:   g.ids.Next(),
			Code: ts.Code,
			Name: ts.Name,
		})
	}

	facultyRows := make([][]any, 0, len(g.world.Faculties))
	for _, f := range g.world.Faculties {
		facultyRows = append(facultyRows, []any{f.ID, f.Code, f.Name})
	}
	if err := g.sink.Insert("faculties", []string{"id", "code", "name"}, facultyRows); err != nil {
		return err
	}

	deptRows := make([][]any, 0, len(g.world.Departments))
	for _, d := range g.world.Departments {
		deptRows = append(deptRows, []any{d.ID, d.FacultyID, d.Code, d.Name})
	}
	if err := g.sink.Insert("departments", []string{"id", "faculty_id", "code", "name"}, deptRows); err != nil {
		return err
	}

	tsRows := make([][]any, 0, len(g.world.TrainingSystems))
	for _, ts := range g.world.TrainingSystems {
		tsRows = append(tsRows, []any{ts.ID, ts.Code, ts.Name})
	}
	return g.sink.Insert("training_systems", []string{"id", "code", "name"}, tsRows)
}
