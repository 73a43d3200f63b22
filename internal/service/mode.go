package service

import (
	"github.com/shenikar/hydrant_inspection_system/internal/models"
)

// MapEvent - событие с поверхности карты
type MapEvent interface {
	isMapEvent()
}

// MarkerClicked - клик по существующему маркеру
type MarkerClicked struct {
	AssetID string
}

// MarkerDragEnded - маркер перетащили в новую точку
type MarkerDragEnded struct {
	AssetID      string
	NewLatitude  float64
	NewLongitude float64
}

// MapClicked - клик по пустому месту карты
type MapClicked struct {
	Latitude  float64
	Longitude float64
}

func (MarkerClicked) isMapEvent()   {}
func (MarkerDragEnded) isMapEvent() {}
func (MapClicked) isMapEvent()      {}

// ActionKind - что следует предпринять в ответ на событие карты
type ActionKind string

const (
	ActionNone          ActionKind = "none"
	ActionPromptInspect ActionKind = "prompt_inspect"
	ActionPromptMove    ActionKind = "prompt_move"
	ActionPromptDelete  ActionKind = "prompt_delete"
	ActionPromptAdd     ActionKind = "prompt_add"
)

// DispatchEvent - таблица переходов конечного автомата режимов.
// Переключение режима происходит только явным выбором пользователя;
// автоматических переходов и истории нет.
//
//	событие \ режим        | Inspect        | Move        | AddDelete
//	клик по маркеру        | prompt_inspect | none        | prompt_delete
//	перетаскивание маркера | none           | prompt_move | none
//	клик по пустой карте   | none           | none        | prompt_add
func DispatchEvent(mode models.InteractionMode, event MapEvent) ActionKind {
	switch event.(type) {
	case MarkerClicked:
		switch mode {
		case models.ModeInspect:
			return ActionPromptInspect
		case models.ModeAddDelete:
			return ActionPromptDelete
		}
		return ActionNone
	case MarkerDragEnded:
		if mode == models.ModeMove {
			return ActionPromptMove
		}
		return ActionNone
	case MapClicked:
		if mode == models.ModeAddDelete {
			return ActionPromptAdd
		}
		return ActionNone
	}
	return ActionNone
}
