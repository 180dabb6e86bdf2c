package model

// PlaceType тип места проведения занятия
type PlaceType string

const (
	PlaceOnline           PlaceType = "online"
	PlaceOnlineZoom       PlaceType = "online_zoom"
	PlaceOnlineMeet       PlaceType = "online_meet"
	PlaceOnlineClassroom  PlaceType = "online_classroom"
	PlaceOnlineOther      PlaceType = "online_other"
	PlaceOffline          PlaceType = "offline"
	PlaceOfflineClassroom PlaceType = "offline_classroom"
	PlaceAuditory         PlaceType = "auditory"
)

// Place место проведения: ссылка на созвон или аудитория
type Place struct {
	PlaceType PlaceType `json:"place_type" validate:"required,oneof=online online_zoom online_meet online_classroom online_other offline offline_classroom auditory"`
	Text      string    `json:"text"`
}

// CreatedBy кто создал запись: приложение или пользователь
type CreatedBy struct {
	AppCode  string `json:"app_code,omitempty"`
	UserCode string `json:"user_code,omitempty"`
}
