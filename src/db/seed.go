package db

import (
	"fastivalle/src/models"
	"fastivalle/src/types"
	"log"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Seed loads demo catalog data for local development. It is a no-op when
// events already exist.
func Seed(d *gorm.DB) error {
	var count int64
	if err := d.Model(&models.Event{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	events := []models.Event{
		{
			Title:          "fastivalle",
			Subtitle:       "FESTIVAL",
			StartDate:      ptrTime(now.AddDate(0, 1, 0)),
			EndDate:        ptrTime(now.AddDate(0, 1, 2)),
			StartTime:      "10:00",
			Venue:          "CAMPTOWN",
			CoverColor:     "#E87D2B",
			IsTopLevel:     true,
			Status:         types.EVENT_PUBLISHED,
			AttendeesCount: 1200,
		},
		{
			Title:          "evening of hope",
			Subtitle:       "CONCERT",
			StartDate:      ptrTime(now.AddDate(0, 0, 14)),
			StartTime:      "19:00",
			Venue:          "MAIN STAGE",
			CoverColor:     "#2B6AE8",
			Status:         types.EVENT_PUBLISHED,
			AttendeesCount: 350,
		},
		{
			Title:     "youth revival",
			Subtitle:  "CONCERT",
			StartDate: ptrTime(now.AddDate(0, 2, 0)),
			StartTime: "18:30",
			Venue:     "MAIN STAGE",
			Status:    types.EVENT_DRAFT,
		},
	}

	return d.Transaction(func(tx *gorm.DB) error {
		for i := range events {
			events[i].Slug = slug.Make(events[i].Title)
			if err := tx.Create(&events[i]).Error; err != nil {
				return err
			}
			ticketTypes := []models.TicketType{
				{
					EventID:     events[i].ID,
					Name:        "standard ticket",
					Price:       20,
					Description: "Full event entry, a bottle of water, and a notebook.",
					Category:    types.CATEGORY_GENERAL,
					TicketType:  "standard",
					MaxPerUser:  5,
					SortOrder:   1,
				},
				{
					EventID:     events[i].ID,
					Name:        "fan ticket",
					Price:       25,
					Description: "Full event entry, a bottle of water, and a raincover.",
					Category:    types.CATEGORY_GENERAL,
					TicketType:  "fan",
					MaxPerUser:  5,
					SortOrder:   2,
				},
				{
					EventID:     events[i].ID,
					Name:        "vip ticket",
					Price:       45,
					Description: "Full event entry, VIP access.",
					Category:    types.CATEGORY_GENERAL,
					TicketType:  "vip",
					MaxPerUser:  5,
					SortOrder:   3,
				},
				{
					EventID:     events[i].ID,
					Name:        "group ticket",
					Price:       20,
					Description: "Ticket includes full event entry.",
					Category:    types.CATEGORY_GROUP,
					TicketType:  "standard",
					MinForGroup: 5,
					MaxForGroup: 25,
					SortOrder:   4,
				},
			}
			if err := tx.Create(&ticketTypes).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded %d demo events\n", len(events))
		return nil
	})
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
