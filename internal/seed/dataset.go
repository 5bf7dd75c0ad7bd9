package seed

import (
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
)

// Dataset is the initial content of a fresh installation. The local store
// writes it verbatim; the Postgres seed inserts it when the tables are empty.
type Dataset struct {
	Branches    []*models.Branch
	Pastors     []*models.Pastor
	Events      []*models.Event
	ChurchInfo  *models.ChurchInfo
	Highlights  []*models.Highlight
	Testimonies []*models.Testimony
}

func str(s string) *string { return &s }

func id(v int64) *int64 { return &v }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func at(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}

func atPtr(year int, month time.Month, d, hour int) *time.Time {
	t := at(year, month, d, hour)
	return &t
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

// Default builds the default dataset. Records without a fixed creation
// date are stamped with now. Every call returns fresh values.
func Default(now time.Time) *Dataset {
	now = now.UTC()

	return &Dataset{
		Branches: []*models.Branch{
			{
				ID:              1,
				Name:            "Main Branch - Johannesburg",
				Address:         "123 Church Street",
				City:            "Johannesburg",
				Province:        str("Gauteng"),
				PhoneNumber:     str("+27 11 123 4567"),
				Email:           str("jhb@voiceofchrist.org.za"),
				EstablishedDate: day(2010, time.March, 15),
				IsActive:        true,
			},
			{
				ID:              2,
				Name:            "Cape Town Branch",
				Address:         "456 Hope Avenue",
				City:            "Cape Town",
				Province:        str("Western Cape"),
				PhoneNumber:     str("+27 21 987 6543"),
				Email:           str("cpt@voiceofchrist.org.za"),
				EstablishedDate: day(2015, time.July, 20),
				IsActive:        true,
			},
			{
				ID:              3,
				Name:            "Durban Branch",
				Address:         "789 Faith Road",
				City:            "Durban",
				Province:        str("KwaZulu-Natal"),
				PhoneNumber:     str("+27 31 456 7890"),
				Email:           str("dbn@voiceofchrist.org.za"),
				EstablishedDate: day(2018, time.November, 10),
				IsActive:        true,
			},
		},
		Pastors: []*models.Pastor{
			{
				ID:           1,
				FirstName:    "John",
				LastName:     "Dube",
				Title:        str("Senior Pastor"),
				Bio:          str("Pastor John has been serving the community for over 15 years, bringing the word of God with passion and dedication."),
				Email:        str("pastor.john@voiceofchrist.org.za"),
				PhoneNumber:  str("+27 11 123 4567"),
				OrdainedDate: dayPtr(2008, time.May, 10),
				IsActive:     true,
				BranchID:     1,
			},
			{
				ID:           2,
				FirstName:    "Sarah",
				LastName:     "Khumalo",
				Title:        str("Associate Pastor"),
				Bio:          str("Pastor Sarah leads our youth ministry and has a heart for reaching the younger generation."),
				Email:        str("pastor.sarah@voiceofchrist.org.za"),
				PhoneNumber:  str("+27 11 123 4568"),
				OrdainedDate: dayPtr(2015, time.August, 20),
				IsActive:     true,
				BranchID:     1,
			},
			{
				ID:           3,
				FirstName:    "David",
				LastName:     "van der Merwe",
				Title:        str("Senior Pastor"),
				Bio:          str("Pastor David established our Cape Town branch and continues to lead with wisdom and grace."),
				Email:        str("pastor.david@voiceofchrist.org.za"),
				PhoneNumber:  str("+27 21 987 6543"),
				OrdainedDate: dayPtr(2012, time.March, 15),
				IsActive:     true,
				BranchID:     2,
			},
			{
				ID:           4,
				FirstName:    "Grace",
				LastName:     "Naidoo",
				Title:        str("Senior Pastor"),
				Bio:          str("Pastor Grace brings a powerful ministry to Durban, focusing on community outreach and evangelism."),
				Email:        str("pastor.grace@voiceofchrist.org.za"),
				PhoneNumber:  str("+27 31 456 7890"),
				OrdainedDate: dayPtr(2016, time.September, 5),
				IsActive:     true,
				BranchID:     3,
			},
		},
		Events: []*models.Event{
			{
				ID:          1,
				Title:       "Sunday Worship Service",
				Description: str("Join us for our weekly worship service with praise, worship, and powerful preaching."),
				EventDate:   at(2025, time.November, 23, 9),
				Location:    str("Main Church Auditorium"),
				Type:        models.EventTypeService,
				Status:      models.EventStatusUpcoming,
				CreatedAt:   now,
				BranchID:    id(1),
			},
			{
				ID:          2,
				Title:       "Youth Conference 2025",
				Description: str("Three days of worship, workshops, and fellowship for young people aged 13-25."),
				EventDate:   at(2025, time.December, 5, 18),
				EndDate:     atPtr(2025, time.December, 7, 16),
				Location:    str("Johannesburg Convention Center"),
				Type:        models.EventTypeYouth,
				Status:      models.EventStatusUpcoming,
				CreatedAt:   now,
				BranchID:    id(1),
			},
			{
				ID:          3,
				Title:       "Christmas Carol Service",
				Description: str("Celebrate the birth of our Savior with carols, drama, and a special Christmas message."),
				EventDate:   at(2025, time.December, 24, 19),
				Location:    str("All Branches"),
				Type:        models.EventTypeService,
				Status:      models.EventStatusUpcoming,
				CreatedAt:   now,
			},
			{
				ID:          4,
				Title:       "Women's Prayer Breakfast",
				Description: str("A morning of prayer, fellowship, and encouragement for all women."),
				EventDate:   at(2025, time.November, 30, 8),
				Location:    str("Main Church Hall"),
				Type:        models.EventTypeWomen,
				Status:      models.EventStatusUpcoming,
				CreatedAt:   now,
				BranchID:    id(1),
			},
			{
				ID:          5,
				Title:       "Easter Celebration 2025",
				Description: str("Celebrating the resurrection of Jesus Christ with special services and activities."),
				EventDate:   at(2025, time.April, 20, 9),
				Location:    str("All Branches"),
				Type:        models.EventTypeService,
				Status:      models.EventStatusCompleted,
				CreatedAt:   day(2025, time.March, 1),
			},
			{
				ID:          6,
				Title:       "Community Outreach Day",
				Description: str("Serving our community with food parcels, health screenings, and prayer."),
				EventDate:   at(2025, time.June, 15, 10),
				Location:    str("Alexandra Township"),
				Type:        models.EventTypeOutreach,
				Status:      models.EventStatusCompleted,
				CreatedAt:   day(2025, time.May, 1),
			},
		},
		ChurchInfo: &models.ChurchInfo{
			ID:      1,
			Mission: "To proclaim the Gospel of Jesus Christ, make disciples of all nations, and transform communities through the power of God's love and Word.",
			Vision:  "To be a vibrant, Spirit-filled church that impacts South Africa and beyond, raising up a generation of believers who know God, love God, and serve God with all their hearts.",
			Beliefs: "We believe in:\n" +
				"• The Holy Trinity - Father, Son, and Holy Spirit\n" +
				"• The Bible as the inspired and infallible Word of God\n" +
				"• Salvation through faith in Jesus Christ alone\n" +
				"• The power of the Holy Spirit in the life of believers\n" +
				"• The importance of prayer, worship, and fellowship\n" +
				"• The Great Commission to make disciples of all nations\n" +
				"• The second coming of Jesus Christ",
			History:      str("Voice of Christ Church was founded in 2010 in Johannesburg by a group of passionate believers who felt called to establish a church that would reach the lost, equip the saints, and impact communities across South Africa. What started as a small gathering of 20 people has grown into a multi-branch church touching thousands of lives."),
			ContactEmail: str("info@voiceofchrist.org.za"),
			ContactPhone: str("+27 11 123 4567"),
			FoundedDate:  dayPtr(2010, time.March, 15),
			HeroVideoURL: str("https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"),
			UpdatedAt:    now,
		},
		Highlights: []*models.Highlight{
			{
				ID:          1,
				Title:       "Sunday Worship Service",
				Description: str("Join us every Sunday for an inspiring worship experience"),
				Type:        models.HighlightTypeImage,
				MediaURL:    "https://images.unsplash.com/photo-1438232992991-995b7058bbb3?w=800",
				OrderIndex:  1,
				IsActive:    true,
				CreatedAt:   now,
			},
			{
				ID:           2,
				Title:        "Youth Conference 2025",
				Description:  str("An amazing time of worship and fellowship with our youth"),
				Type:         models.HighlightTypeVideo,
				MediaURL:     "https://www.youtube.com/embed/dQw4w9WgXcQ",
				ThumbnailURL: str("https://images.unsplash.com/photo-1511632765486-a01980e01a18?w=800"),
				OrderIndex:   2,
				IsActive:     true,
				CreatedAt:    now,
			},
			{
				ID:          3,
				Title:       "Community Outreach",
				Description: str("Serving our community with love"),
				Type:        models.HighlightTypeImage,
				MediaURL:    "https://images.unsplash.com/photo-1469571486292-0ba58a3f068b?w=800",
				OrderIndex:  3,
				IsActive:    true,
				CreatedAt:   now,
			},
		},
		Testimonies: []*models.Testimony{
			{
				ID:         1,
				Name:       str("Sarah Johnson"),
				Testimony:  "I came to Voice of Christ Church at a very difficult time in my life. The community embraced me with open arms, and through the powerful teachings and prayers, I found healing and a renewed relationship with God. This church has truly transformed my life!",
				IsApproved: true,
				CreatedAt:  day(2024, time.October, 15),
			},
			{
				ID:         2,
				Name:       str("David Nkosi"),
				Testimony:  "Being part of this church family has been an incredible blessing. The youth ministry helped me grow in my faith, and I met amazing friends who encourage me daily. Pastor John's messages are always relevant and inspiring. Glory to God!",
				IsApproved: true,
				CreatedAt:  day(2024, time.November, 1),
			},
			{
				ID:         3,
				Testimony:  "God has done amazing things in my life through this ministry. I was struggling with addiction, but the prayer warriors here never gave up on me. Today, I am free and serving God with all my heart. Thank you, Voice of Christ Church!",
				IsApproved: true,
				CreatedAt:  day(2024, time.November, 10),
			},
			{
				ID:         4,
				Name:       str("Grace Mthembu"),
				Testimony:  "The worship services here are so powerful! Every Sunday I leave feeling refreshed and ready to face the week. The teaching is solid, the people are genuine, and most importantly, the presence of God is evident. I'm grateful to call this my church home.",
				IsApproved: true,
				CreatedAt:  day(2024, time.November, 15),
			},
		},
	}
}
