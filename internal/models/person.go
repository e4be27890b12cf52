package models

import "time"

// Gender enumerates person genders used by the generator.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// RoleTag is the denormalised role marker stored on accounts.
type RoleTag string

const (
	RoleTagStudent    RoleTag = "student"
	RoleTagInstructor RoleTag = "instructor"
	RoleTagAdmin      RoleTag = "admin"
)

// Person is the base identity record behind every account.
type Person struct {
	ID              string    `db:"id"`
	FirstName       string    `db:"first_name"`
	LastName        string    `db:"last_name"`
	DateOfBirth     time.Time `db:"date_of_birth"`
	Gender          Gender    `db:"gender"`
	Email           string    `db:"email"`
	PhoneNumber     string    `db:"phone_number"`
	CitizenID       string    `db:"citizen_id"`
	Address         string    `db:"address"`
	ProfileImageURL string    `db:"profile_image_url"`
}

// Account links a person to credentials and a role.
type Account struct {
	ID           string  `db:"id"`
	PersonID     string  `db:"person_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	RoleID       string  `db:"role_id"`
	RoleTag      RoleTag `db:"role_tag"`
}

// Role groups permissions.
type Role struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

// Permission is an atomic capability flag.
type Permission struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

// RolePermission joins roles and permissions.
type RolePermission struct {
	RoleID       string `db:"role_id"`
	PermissionID string `db:"permission_id"`
}

// Instructor specialises a person as teaching staff.
type Instructor struct {
	ID           string `db:"id"`
	PersonID     string `db:"person_id"`
	DepartmentID string `db:"department_id"`
	Degree       string `db:"degree"`
}

// Admin specialises a person as administrative staff.
type Admin struct {
	ID       string `db:"id"`
	PersonID string `db:"person_id"`
}

// StudentStatus enumerates enrollment standing of a student.
type StudentStatus string

const (
	StudentStatusActive     StudentStatus = "active"
	StudentStatusGraduated  StudentStatus = "graduated"
	StudentStatusSuspended  StudentStatus = "suspended"
	StudentStatusDroppedOut StudentStatus = "dropped_out"
	StudentStatusInactive   StudentStatus = "inactive"
)

// Student specialises a person as an enrolled student.
type Student struct {
	ID       string        `db:"id"`
	PersonID string        `db:"person_id"`
	Code     string        `db:"code"`
	ClassID  string        `db:"class_id"`
	Status   StudentStatus `db:"status"`
}
