package models

import "time"

type Review struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"-"`
	RestaurantID string    `json:"restaurantId"`
	UserName     string    `json:"userName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Photos       []string  `json:"photos"`
	Date         time.Time `json:"date"`
	Helpful      int       `json:"helpful"`
}
