package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TeamKey идентифицирует команду: пара "разряд-отряд" (分団-部).
// Ключ документа чек-листа - "<division>-<section>".
type TeamKey struct {
	Division string `json:"division"`
	Section  string `json:"section"`
}

// ParseTeamKey разбирает ключ вида "2分団-3部"
func ParseTeamKey(s string) (TeamKey, error) {
	division, section, ok := strings.Cut(s, "-")
	if !ok || division == "" || section == "" {
		return TeamKey{}, fmt.Errorf("invalid team key %q", s)
	}
	return TeamKey{Division: division, Section: section}, nil
}

// String возвращает ключ документа чек-листа
func (t TeamKey) String() string {
	return t.Division + "-" + t.Section
}

// IsZero сообщает, что ключ не заполнен
func (t TeamKey) IsZero() bool {
	return t.Division == "" || t.Section == ""
}

// ChecklistEntry - значение одного поля документа чек-листа.
// На диске встречаются три формы:
//
//	true                                  - осмотрен, без аномалий (устаревшая краткая запись)
//	false                                 - был осмотрен, явно сброшен в "не осмотрен"
//	{checked, issue, lastUpdated}         - структурная запись
//
// Полное отсутствие поля означает "никогда не трогали". Явный false от
// отсутствия отличим - это нужно для счётчика "всего когда-либо осмотрено".
type ChecklistEntry struct {
	Checked     bool
	Issue       AnomalyKind
	LastUpdated time.Time
}

type checklistEntryJSON struct {
	Checked     bool   `json:"checked"`
	Issue       string `json:"issue,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// UnmarshalJSON принимает все три формы записи
func (e *ChecklistEntry) UnmarshalJSON(data []byte) error {
	var legacy bool
	if err := json.Unmarshal(data, &legacy); err == nil {
		*e = ChecklistEntry{Checked: legacy}
		if legacy {
			e.Issue = AnomalyNone
		}
		return nil
	}

	var obj checklistEntryJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid checklist entry: %w", err)
	}
	e.Checked = obj.Checked
	e.Issue = AnomalyKind(obj.Issue)
	if e.Checked && e.Issue == "" {
		e.Issue = AnomalyNone
	}
	if obj.LastUpdated != "" {
		ts, err := time.Parse(time.RFC3339, obj.LastUpdated)
		if err != nil {
			return fmt.Errorf("invalid checklist entry timestamp: %w", err)
		}
		e.LastUpdated = ts
	}
	return nil
}

// MarshalJSON пишет структурную запись для осмотренных объектов и явный
// false для сброшенных. Краткую форму true больше не записываем, но
// продолжаем читать.
func (e ChecklistEntry) MarshalJSON() ([]byte, error) {
	if !e.Checked {
		return json.Marshal(false)
	}
	obj := checklistEntryJSON{Checked: true}
	if e.Issue != "" && e.Issue != AnomalyNone {
		obj.Issue = string(e.Issue)
	}
	if !e.LastUpdated.IsZero() {
		obj.LastUpdated = e.LastUpdated.Format(time.RFC3339)
	}
	return json.Marshal(obj)
}

// ChecklistRecord - документ чек-листа одной команды: assetID -> запись
type ChecklistRecord map[string]ChecklistEntry

// EverTouched возвращает число объектов, которые хоть раз трогали
// (включая явно сброшенные)
func (r ChecklistRecord) EverTouched() int {
	return len(r)
}

// CheckedCount возвращает число осмотренных объектов
func (r ChecklistRecord) CheckedCount() int {
	n := 0
	for _, e := range r {
		if e.Checked {
			n++
		}
	}
	return n
}
