package catalog

import (
	"fmt"
	"time"

	"bookit/pkg/model"
)

// Seed builds the catalog: a fixed experience list and a run of upcoming
// slots per experience. Slots start at full capacity; occupancy only
// moves through Reserve/Release.
func Seed(slotsPerExperience, slotCapacity int, now time.Time) ([]*model.Experience, []*model.Slot) {
	experiences := seedExperiences()

	var slots []*model.Slot
	for _, exp := range experiences {
		for day := 1; day <= slotsPerExperience; day++ {
			// Alternate morning and afternoon departures.
			hour := 9
			if day%2 == 0 {
				hour = 14
			}
			start := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location()).AddDate(0, 0, day)

			slots = append(slots, &model.Slot{
				ID:           fmt.Sprintf("%s-slot-%d", exp.ID, day),
				ExperienceID: exp.ID,
				StartsAt:     start,
				Capacity:     slotCapacity,
				Remaining:    slotCapacity,
				IsSoldOut:    slotCapacity == 0,
			})
		}
	}

	return experiences, slots
}

func seedExperiences() []*model.Experience {
	return []*model.Experience{
		{
			ID:           "exp-01",
			Title:        "Sunrise Hot Air Balloon Ride",
			Slug:         "sunrise-balloon-ride",
			Location:     "Jaipur, Rajasthan",
			Description:  "Catch the golden hour over Jaipur's majestic forts and vibrant fields from a hot air balloon. A truly breathtaking perspective of the Pink City.",
			PricePerHead: 1999,
			Currency:     "INR",
			DurationMins: 120,
			Rating:       4.8,
			Tags:         []string{"adventure", "indian", "rajasthan"},
		},
		{
			ID:           "exp-02",
			Title:        "Andaman Scuba Diving",
			Slug:         "andaman-scuba-diving",
			Location:     "Havelock Island, Andaman",
			Description:  "Dive into the crystal-clear waters of the Andaman Sea and explore a vibrant underwater world of coral reefs and exotic marine life.",
			PricePerHead: 3500,
			Currency:     "INR",
			DurationMins: 180,
			Rating:       4.9,
			Tags:         []string{"adventure", "beach", "indian", "andaman"},
		},
		{
			ID:           "exp-03",
			Title:        "Ranthambore Jungle Safari",
			Slug:         "ranthambore-jungle-safari",
			Location:     "Ranthambore National Park, Rajasthan",
			Description:  "Embark on an adventurous jeep safari to spot the magnificent Bengal tiger in its natural habitat, along with other diverse wildlife.",
			PricePerHead: 2500,
			Currency:     "INR",
			DurationMins: 240,
			Rating:       4.7,
			Tags:         []string{"safari", "indian", "rajasthan"},
		},
		{
			ID:           "exp-04",
			Title:        "Himalayan Mountain Trek",
			Slug:         "himalayan-mountain-trek",
			Location:     "Manali, Himachal Pradesh",
			Description:  "A challenging and rewarding trek through the stunning landscapes of the Himalayas, offering panoramic views and serene nature.",
			PricePerHead: 5000,
			Currency:     "INR",
			DurationMins: 480,
			Rating:       4.6,
			Tags:         []string{"hiking", "indian", "himachal"},
		},
		{
			ID:           "exp-05",
			Title:        "Kayaking on Vembanad Lake",
			Slug:         "kayaking-vembanad-lake",
			Location:     "Alleppey, Kerala",
			Description:  "Paddle through the serene backwaters of Kerala, witnessing the lush greenery and tranquil village life from your kayak.",
			PricePerHead: 1200,
			Currency:     "INR",
			DurationMins: 150,
			Rating:       4.7,
			Tags:         []string{"adventure", "indian", "kerala"},
		},
		{
			ID:           "exp-06",
			Title:        "Goan Cuisine Cooking Class",
			Slug:         "goan-cuisine-cooking-class",
			Location:     "Panjim, Goa",
			Description:  "Learn the secrets of authentic Goan cuisine from a local chef and enjoy a delicious meal that you prepared yourself.",
			PricePerHead: 2200,
			Currency:     "INR",
			DurationMins: 180,
			Rating:       4.9,
			Tags:         []string{"cultural", "indian", "goa"},
		},
		{
			ID:           "exp-07",
			Title:        "Historical Tour of Hampi",
			Slug:         "historical-tour-hampi",
			Location:     "Hampi, Karnataka",
			Description:  "Step back in time with a guided tour of the ancient ruins of the Vijayanagara Empire, a UNESCO World Heritage site.",
			PricePerHead: 1500,
			Currency:     "INR",
			DurationMins: 300,
			Rating:       4.8,
			Tags:         []string{"cultural", "explorer", "indian"},
		},
		{
			ID:           "exp-08",
			Title:        "Stargazing at Spiti Valley",
			Slug:         "stargazing-spiti-valley",
			Location:     "Spiti Valley, Himachal Pradesh",
			Description:  "Witness the breathtaking spectacle of the Milky Way and countless stars in the clear, unpolluted skies of the high-altitude Spiti Valley.",
			PricePerHead: 2800,
			Currency:     "INR",
			DurationMins: 120,
			Rating:       4.9,
			Tags:         []string{"explorer", "indian", "himachal"},
		},
		{
			ID:           "exp-09",
			Title:        "Paragliding in Bir Billing",
			Slug:         "paragliding-bir-billing",
			Location:     "Bir Billing, Himachal Pradesh",
			Description:  "Soar like a bird and get a stunning aerial view of the Dhauladhar mountain range in one of the world's best paragliding sites.",
			PricePerHead: 4000,
			Currency:     "INR",
			DurationMins: 60,
			Rating:       4.9,
			Tags:         []string{"adventure", "indian", "himachal"},
		},
		{
			ID:           "exp-10",
			Title:        "Houseboat Cruise in Alleppey",
			Slug:         "houseboat-cruise-alleppey",
			Location:     "Alleppey, Kerala",
			Description:  "Relax on a traditional houseboat as you glide through the tranquil backwaters, enjoying delicious Keralan cuisine.",
			PricePerHead: 6000,
			Currency:     "INR",
			DurationMins: 1440,
			Rating:       4.8,
			Tags:         []string{"beach", "cultural", "indian", "kerala"},
		},
		{
			ID:           "exp-11",
			Title:        "Camel Safari in Thar Desert",
			Slug:         "camel-safari-thar-desert",
			Location:     "Jaisalmer, Rajasthan",
			Description:  "Experience the magic of the desert with an overnight camel safari, complete with traditional music, dance, and a starlit sky.",
			PricePerHead: 3200,
			Currency:     "INR",
			DurationMins: 1200,
			Rating:       4.7,
			Tags:         []string{"safari", "cultural", "indian", "rajasthan"},
		},
		{
			ID:           "exp-12",
			Title:        "African Safari Adventure",
			Slug:         "african-safari-adventure",
			Location:     "Masai Mara, Kenya",
			Description:  "Experience the Great Migration and witness the stunning wildlife of Africa in this unforgettable safari.",
			PricePerHead: 15000,
			Currency:     "INR",
			DurationMins: 10080,
			Rating:       4.9,
			Tags:         []string{"safari", "adventure", "world", "africa"},
		},
	}
}
