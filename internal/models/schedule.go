package models

// ScheduleEntry is one derived (class, period, faculty) teaching slot for a
// given date. Display-only: the placement rule is collision-unaware, so two
// faculty members can land on the same class and period. Nothing downstream
// may assume the derived schedule is conflict free.
type ScheduleEntry struct {
	ClassName   string `json:"className"`
	Subject     string `json:"subject"`
	FacultyID   string `json:"facultyId"`
	FacultyName string `json:"facultyName"`
	Period      int    `json:"period"`
	IsAvailable bool   `json:"isAvailable"`
}
