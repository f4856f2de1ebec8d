package connector

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Seed loads the dataset into a live database. Ids are assigned by the
// database; relations are remapped on the way in.
func Seed(ctx context.Context, db *gorm.DB, ds *Dataset) error {
	snap, err := ds.Materialize(time.Now())
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companyIDs := make(map[uint]uint, len(snap.Companies))
		for i := range snap.Companies {
			c := snap.Companies[i]
			oldID := c.ID
			c.ID = 0
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seeding company %q: %w", c.Name, err)
			}
			companyIDs[oldID] = c.ID
		}

		jobIDs := make(map[uint]uint, len(snap.Jobs))
		for i := range snap.Jobs {
			j := snap.Jobs[i]
			oldID := j.ID
			j.ID = 0
			j.CompanyID = companyIDs[j.CompanyID]
			if err := tx.Omit("Company").Create(&j).Error; err != nil {
				return fmt.Errorf("seeding job %q: %w", j.Title, err)
			}
			jobIDs[oldID] = j.ID
		}

		for i := range snap.Profiles {
			p := snap.Profiles[i]
			p.ID = 0
			if p.CompanyID != nil {
				mapped := companyIDs[*p.CompanyID]
				p.CompanyID = &mapped
			}
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seeding profile %s: %w", p.UserID, err)
			}
		}

		for i := range snap.Applications {
			a := snap.Applications[i]
			a.ID = 0
			a.JobID = jobIDs[a.JobID]
			if err := tx.Omit("Job").Create(&a).Error; err != nil {
				return fmt.Errorf("seeding application of %s: %w", a.UserID, err)
			}
		}
		return nil
	})
}
