package repositories

import (
	"fmt"

	"github.com/yigit/hostelportal/internal/app/models"
)

type hostelSeed struct {
	hostel   models.Hostel
	blocks   []string
	perBlock int
	capacity int
	full     bool
}

var defaultSeeds = []hostelSeed{
	{hostel: models.Hostel{ID: "1", Name: "Ahmadu Bello Hall", Gender: models.GenderMale, Campus: "Main"}, blocks: []string{"A", "B", "C"}, perBlock: 5, capacity: 4},
	{hostel: models.Hostel{ID: "2", Name: "Queen Amina Hall", Gender: models.GenderFemale, Campus: "Main"}, blocks: []string{"A", "B"}, perBlock: 6, capacity: 4},
	{hostel: models.Hostel{ID: "3", Name: "Ribadu Hall", Gender: models.GenderMale, Campus: "Main"}, blocks: []string{"A", "B"}, perBlock: 5, capacity: 3},
	{hostel: models.Hostel{ID: "4", Name: "Kongo Hall", Gender: models.GenderMale, Campus: "Kongo"}, blocks: []string{"A"}, perBlock: 6, capacity: 2},
	{hostel: models.Hostel{ID: "5", Name: "Zaria Hall", Gender: models.GenderFemale, Campus: "Main"}, blocks: []string{"A", "B"}, perBlock: 4, capacity: 4},
	{hostel: models.Hostel{ID: "6", Name: "Kaduna Hall", Gender: models.GenderMale, Campus: "Main"}, blocks: []string{"A"}, perBlock: 4, capacity: 4, full: true},
}

// DefaultHostels returns the catalogue the mock backend starts with.
// Kaduna Hall starts fully occupied.
func DefaultHostels() ([]models.Hostel, map[string][]models.Room) {
	hostels := make([]models.Hostel, 0, len(defaultSeeds))
	rooms := make(map[string][]models.Room, len(defaultSeeds))

	for _, seed := range defaultSeeds {
		hostels = append(hostels, seed.hostel)
		for _, block := range seed.blocks {
			for n := 1; n <= seed.perBlock; n++ {
				room := models.Room{
					ID:        fmt.Sprintf("%s-%s%02d", seed.hostel.ID, block, n),
					Name:      fmt.Sprintf("%s%02d", block, n),
					BlockName: "Block " + block,
					Capacity:  seed.capacity,
				}
				if seed.full {
					room.Occupied = room.Capacity
				}
				rooms[seed.hostel.ID] = append(rooms[seed.hostel.ID], room)
			}
		}
	}
	return hostels, rooms
}
