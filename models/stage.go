package models

// StageTag - закрытый набор этапов подбора, задается при деплое и не расширяется тенантами.
// Поведение системы привязано к тегу этапа, а не к названию статуса.
type StageTag string

const (
	StageAdministration StageTag = "administration"
	StageTest           StageTag = "test"
	StageInterviewHR    StageTag = "interview_hr"
	StageInterviewUser  StageTag = "interview_user"
	StageMedicalCheckup StageTag = "medical_checkup"
	StageHired          StageTag = "hired"
	StageRejected       StageTag = "rejected"
)

var stageOrder = map[StageTag]int{
	StageAdministration: 1,
	StageTest:           2,
	StageInterviewHR:    3,
	StageInterviewUser:  4,
	StageMedicalCheckup: 5,
	StageHired:          6,
	StageRejected:       6,
}

func (s StageTag) IsValid() bool {
	_, ok := stageOrder[s]
	return ok
}

// IsTerminal - после принятия или отклонения кандидата переходы запрещены
func (s StageTag) IsTerminal() bool {
	return s == StageHired || s == StageRejected
}

// Order - порядок этапов в воронке, отклонение возможно с любого этапа,
// поэтому порядок носит рекомендательный характер для админки и отчетов
func (s StageTag) Order() int {
	return stageOrder[s]
}

func StageTags() []StageTag {
	return []StageTag{
		StageAdministration,
		StageTest,
		StageInterviewHR,
		StageInterviewUser,
		StageMedicalCheckup,
		StageHired,
		StageRejected,
	}
}
