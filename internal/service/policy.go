package service

import "go_4_elearning/internal/model"

// CanManageCourse は admin、または講座の担当講師本人なら true
func CanManageCourse(role string, subjectID, ownerID uint) bool {
	if role == model.RoleAdmin {
		return true
	}
	return role == model.RoleInstructor && subjectID == ownerID
}

func IsRole(role string, allowed ...string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
