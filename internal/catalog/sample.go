package catalog

import (
	"time"

	"github.com/notepid/roomielink/internal/model"
)

// Demo ids stay below LiveIDBase so demo and live records never collide.

type samplePost struct {
	post model.Post
	age  time.Duration
}

func sampleAuthor(name, avatar, university string) model.Author {
	return model.Author{Name: name, Avatar: avatar, University: university}
}

var samplePosts = []samplePost{
	{model.Post{
		ID:      1,
		Author:  sampleAuthor("Michael Johnson", "MJ", "Northeastern University"),
		Content: "CS major looking for a roommate to share studio apartment near Northeastern. Love gaming and cooking. $850/month split.",
		Tags:    []string{"CS Student", "Gaming", "Near NEU", "$850/month"},
		City:    "boston", University: "northeastern", Locality: "fenway",
		Price: "800-1200", RoomType: "shared", Gender: "male", Food: "non-vegetarian",
		Timestamp: "2 days ago",
	}, 48 * time.Hour},
	{model.Post{
		ID:      2,
		Author:  sampleAuthor("Jessica Wang", "JW", "Northeastern University"),
		Content: "Female engineering student seeking female roommate in Mission Hill. Clean, studious, and vegetarian. $750/month.",
		Tags:    []string{"Engineering", "Female Only", "Mission Hill", "Clean"},
		City:    "boston", University: "northeastern", Locality: "mission-hill",
		Price: "700-800", RoomType: "private", Gender: "female", Food: "vegetarian",
		Timestamp: "1 day ago",
	}, 24 * time.Hour},
	{model.Post{
		ID:      3,
		Author:  sampleAuthor("Carlos Rivera", "CR", "Northeastern University"),
		Content: "International business student looking for affordable shared room near campus. Budget $450. Open to any gender roommates.",
		Tags:    []string{"International", "Business", "Affordable", "Near Campus"},
		City:    "boston", University: "northeastern", Locality: "fenway",
		Price: "under-500", RoomType: "shared", Gender: "mixed", Food: "non-vegetarian",
		Timestamp: "3 hours ago",
	}, 3 * time.Hour},
	{model.Post{
		ID:      4,
		Author:  sampleAuthor("Aisha Patel", "AP", "Northeastern University"),
		Content: "Graduate student in data science seeking quiet female roommate for 2BR in Back Bay. Vegetarian, non-smoker. $1400/month.",
		Tags:    []string{"Data Science", "Graduate", "Quiet", "Back Bay"},
		City:    "boston", University: "northeastern", Locality: "back-bay",
		Price: "1200-plus", RoomType: "private", Gender: "female", Food: "vegetarian",
		Timestamp: "5 hours ago",
	}, 5 * time.Hour},
	{model.Post{
		ID:      5,
		Author:  sampleAuthor("Tyler Brooks", "TB", "Northeastern University"),
		Content: "Male co-op student looking for temporary housing (6 months) in Allston. Private room preferred. $900/month.",
		Tags:    []string{"Co-op Student", "Temporary", "Allston", "Private Room"},
		City:    "boston", University: "northeastern", Locality: "allston",
		Price: "800-1200", RoomType: "private", Gender: "male", Food: "non-vegetarian",
		Timestamp: "1 hour ago",
	}, time.Hour},
	{model.Post{
		ID:      6,
		Author:  sampleAuthor("Sophia Kim", "SK", "Northeastern University"),
		Content: "Pharmacy student seeking roommates for 3BR house in Jamaica Plain. LGBTQ+ friendly, vegetarian household. $700/month.",
		Tags:    []string{"Pharmacy", "LGBTQ+ Friendly", "Jamaica Plain", "Vegetarian"},
		City:    "boston", University: "northeastern", Locality: "jamaica-plain",
		Price: "700-800", RoomType: "private", Gender: "mixed", Food: "vegetarian",
		Timestamp: "6 hours ago",
	}, 6 * time.Hour},
	{model.Post{
		ID:      7,
		Author:  sampleAuthor("Sarah Miller", "SM", "Harvard University"),
		Content: "Graduate student seeking female roommate for 2BR apartment near Harvard Square. Clean, quiet, non-smoker. $750/month.",
		Tags:    []string{"Graduate", "Female Only", "Harvard Square", "Non-Smoker"},
		City:    "boston", University: "harvard", Locality: "cambridge",
		Price: "700-800", RoomType: "private", Gender: "female", Food: "vegetarian",
		Timestamp: "2 hours ago",
	}, 2 * time.Hour},
	{model.Post{
		ID:      8,
		Author:  sampleAuthor("James Wilson", "JW", "Harvard University"),
		Content: "Law student looking for shared accommodation in Cambridge. Budget under $500. Open to male roommates.",
		Tags:    []string{"Law Student", "Budget Friendly", "Cambridge", "Male"},
		City:    "boston", University: "harvard", Locality: "cambridge",
		Price: "under-500", RoomType: "shared", Gender: "male", Food: "non-vegetarian",
		Timestamp: "4 hours ago",
	}, 4 * time.Hour},
	{model.Post{
		ID:      9,
		Author:  sampleAuthor("Raj Kumar", "RK", "MIT"),
		Content: "International PhD student looking for vegetarian roommates in Cambridge. Budget $650. Quiet and studious.",
		Tags:    []string{"PhD", "International", "Vegetarian", "Cambridge"},
		City:    "boston", University: "mit", Locality: "cambridge",
		Price: "500-700", RoomType: "shared", Gender: "mixed", Food: "vegetarian",
		Timestamp: "5 hours ago",
	}, 5 * time.Hour},
	{model.Post{
		ID:      10,
		Author:  sampleAuthor("Elena Rodriguez", "ER", "MIT"),
		Content: "Computer science student seeking female roommate for luxury apartment in Back Bay. $1500/month, fully furnished.",
		Tags:    []string{"Computer Science", "Luxury", "Back Bay", "Furnished"},
		City:    "boston", University: "mit", Locality: "back-bay",
		Price: "1200-plus", RoomType: "private", Gender: "female", Food: "non-vegetarian",
		Timestamp: "8 hours ago",
	}, 8 * time.Hour},
	{model.Post{
		ID:      11,
		Author:  sampleAuthor("Anna Lee", "AL", "Boston University"),
		Content: "Need 2 roommates for 4BR house in Allston. Great location, 15 mins to campus. $650/month each. Pet-friendly!",
		Tags:    []string{"Pet Friendly", "Allston", "4BR House", "Multiple Roommates"},
		City:    "boston", University: "bu", Locality: "allston",
		Price: "500-700", RoomType: "private", Gender: "mixed", Food: "non-vegetarian",
		Timestamp: "1 day ago",
	}, 24 * time.Hour},
	{model.Post{
		ID:      12,
		Author:  sampleAuthor("David Thompson", "DT", "Boston University"),
		Content: "Junior looking for male roommate in Brighton. Have a car, love sports. Private room available. $800/month.",
		Tags:    []string{"Junior", "Brighton", "Car Owner", "Sports"},
		City:    "boston", University: "bu", Locality: "brighton",
		Price: "700-800", RoomType: "private", Gender: "male", Food: "non-vegetarian",
		Timestamp: "12 hours ago",
	}, 12 * time.Hour},
	{model.Post{
		ID:      13,
		Author:  sampleAuthor("Emily Chen", "EC", "Emerson College"),
		Content: "Film student seeking creative female roommate in Back Bay. Artist-friendly space, vegetarian household. $1300/month.",
		Tags:    []string{"Film Student", "Creative", "Artist-Friendly", "Back Bay"},
		City:    "boston", University: "emerson", Locality: "back-bay",
		Price: "1200-plus", RoomType: "private", Gender: "female", Food: "vegetarian",
		Timestamp: "3 days ago",
	}, 72 * time.Hour},
}

// demoPosts returns a fresh copy of the sample feed stamped relative to now.
func demoPosts(now time.Time) []model.Post {
	out := make([]model.Post, len(samplePosts))
	for i, s := range samplePosts {
		p := s.post.Clone()
		p.CreatedAt = now.Add(-s.age)
		out[i] = p
	}
	return out
}

// browseListings is the demo set students see on the listings tab.
var browseListings = []model.Listing{
	{ID: 1, Price: "$1,200/month", Address: "123 Commonwealth Ave, Boston, MA",
		Details: []string{"2 BR", "1 BA", "750 sq ft"}, Tags: []string{"Near BU", "Furnished", "Utilities Included"},
		Landlord: "Boston Properties", City: "boston", Locality: "back-bay", PriceRange: "1200-plus", Status: model.ListingActive},
	{ID: 2, Price: "$800/month", Address: "45 Harvard St, Cambridge, MA",
		Details: []string{"1 BR", "1 BA", "500 sq ft"}, Tags: []string{"Near Harvard", "Studio", "Available Now"},
		Landlord: "Cambridge Rentals", City: "boston", Locality: "cambridge", PriceRange: "700-800", Status: model.ListingActive},
	{ID: 3, Price: "$950/month", Address: "78 Beacon St, Boston, MA",
		Details: []string{"2 BR", "1.5 BA", "850 sq ft"}, Tags: []string{"Back Bay", "Laundry", "Parking"},
		Landlord: "Back Bay Properties", City: "boston", Locality: "back-bay", PriceRange: "800-1200", Status: model.ListingActive},
	{ID: 4, Price: "$1,100/month", Address: "156 Mass Ave, Cambridge, MA",
		Details: []string{"3 BR", "2 BA", "1000 sq ft"}, Tags: []string{"Near MIT", "Shared Kitchen", "Students Welcome"},
		Landlord: "MIT Area Rentals", City: "boston", Locality: "cambridge", PriceRange: "800-1200", Status: model.ListingActive},
	{ID: 5, Price: "$450/month", Address: "89 Mission Hill Ave, Boston, MA",
		Details: []string{"Shared Room", "3 Bed House", "Common Areas"}, Tags: []string{"Mission Hill", "Affordable", "Student House"},
		Landlord: "Student Housing Co", City: "boston", Locality: "mission-hill", PriceRange: "under-500", Status: model.ListingActive},
	{ID: 6, Price: "$750/month", Address: "234 Huntington Ave, Boston, MA",
		Details: []string{"1 BR", "1 BA", "600 sq ft"}, Tags: []string{"Near Northeastern", "Fenway", "Modern"},
		Landlord: "Fenway Student Housing", City: "boston", Locality: "fenway", PriceRange: "700-800", Status: model.ListingActive},
	{ID: 7, Price: "$1,350/month", Address: "567 Newbury St, Boston, MA",
		Details: []string{"2 BR", "2 BA", "900 sq ft"}, Tags: []string{"Back Bay", "Luxury", "Shopping District"},
		Landlord: "Premium Boston Rentals", City: "boston", Locality: "back-bay", PriceRange: "1200-plus", Status: model.ListingActive},
	{ID: 8, Price: "$650/month", Address: "123 Brighton Ave, Boston, MA",
		Details: []string{"Shared Room", "4 BR House", "Garden"}, Tags: []string{"Brighton", "Student House", "Garden"},
		Landlord: "Brighton Student Properties", City: "boston", Locality: "brighton", PriceRange: "500-700", Status: model.ListingActive},
}

// managedListings is the demo set shown on every landlord dashboard.
var managedListings = []model.Listing{
	{ID: 1, Title: "Modern 2BR Apartment", Price: "$1,200/month", Address: "123 Commonwealth Ave, Boston, MA",
		Details: []string{"2 BR", "1 BA", "750 sq ft"}, Status: model.ListingActive,
		Views: 45, Applications: 8, Messages: 3,
		Tags: []string{"Near BU", "Furnished", "Utilities Included"}, DatePosted: "2024-01-15"},
	{ID: 2, Title: "Cozy Studio Near Harvard", Price: "$800/month", Address: "45 Harvard St, Cambridge, MA",
		Details: []string{"1 BR", "1 BA", "500 sq ft"}, Status: model.ListingActive,
		Views: 32, Applications: 5, Messages: 2,
		Tags: []string{"Near Harvard", "Studio", "Available Now"}, DatePosted: "2024-01-12"},
	{ID: 3, Title: "Spacious Back Bay Apartment", Price: "$950/month", Address: "78 Beacon St, Boston, MA",
		Details: []string{"2 BR", "1.5 BA", "850 sq ft"}, Status: model.ListingPending,
		Views: 28, Applications: 12, Messages: 5,
		Tags: []string{"Back Bay", "Laundry", "Parking"}, DatePosted: "2024-01-10"},
	{ID: 4, Title: "Student House Near MIT", Price: "$1,100/month", Address: "156 Mass Ave, Cambridge, MA",
		Details: []string{"3 BR", "2 BA", "1000 sq ft"}, Status: model.ListingInactive,
		Views: 67, Applications: 15, Messages: 8,
		Tags: []string{"Near MIT", "Shared Kitchen", "Students Welcome"}, DatePosted: "2024-01-08"},
	{ID: 5, Title: "Luxury Downtown Loft", Price: "$1,800/month", Address: "89 Downtown Crossing, Boston, MA",
		Details: []string{"2 BR", "2 BA", "1200 sq ft"}, Status: model.ListingActive,
		Views: 89, Applications: 22, Messages: 12,
		Tags: []string{"Downtown", "Luxury", "City View"}, DatePosted: "2024-01-05"},
}

var sampleApplications = []model.Application{
	{
		ID:              1,
		Applicant:       model.Applicant{Name: "Sarah Miller", Avatar: "SM", University: "Harvard University", Year: "Graduate Student"},
		PropertyTitle:   "Cozy Studio Near Harvard",
		PropertyAddress: "45 Harvard St, Cambridge, MA",
		Message:         "Hi! I'm a graduate student at Harvard looking for a quiet place to study. I'm very responsible and have excellent references from previous landlords.",
		Status:          model.ApplicationPending,
		AppliedDate:     "2024-01-20", Budget: "$800-900", MoveInDate: "2024-02-01",
	},
	{
		ID:              2,
		Applicant:       model.Applicant{Name: "Raj Kumar", Avatar: "RK", University: "MIT", Year: "PhD Student"},
		PropertyTitle:   "Student House Near MIT",
		PropertyAddress: "156 Mass Ave, Cambridge, MA",
		Message:         "I'm an international PhD student at MIT. I'm looking for a place close to campus. I'm clean, quiet, and vegetarian. Happy to provide any documentation needed.",
		Status:          model.ApplicationApproved,
		AppliedDate:     "2024-01-18", Budget: "$1000-1200", MoveInDate: "2024-02-15",
	},
	{
		ID:              3,
		Applicant:       model.Applicant{Name: "Anna Lee", Avatar: "AL", University: "Boston University", Year: "Senior"},
		PropertyTitle:   "Modern 2BR Apartment",
		PropertyAddress: "123 Commonwealth Ave, Boston, MA",
		Message:         "I'm looking for a place to share with my roommate for our final year. We're both responsible students with part-time jobs.",
		Status:          model.ApplicationPending,
		AppliedDate:     "2024-01-19", Budget: "$1200-1400", MoveInDate: "2024-02-01",
	},
	{
		ID:              4,
		Applicant:       model.Applicant{Name: "Michael Chen", Avatar: "MC", University: "Northeastern University", Year: "Junior"},
		PropertyTitle:   "Spacious Back Bay Apartment",
		PropertyAddress: "78 Beacon St, Boston, MA",
		Message:         "I'm a CS major at Northeastern. I work part-time at a tech company and can provide proof of income. Looking for a quiet place to code and study.",
		Status:          model.ApplicationRejected,
		AppliedDate:     "2024-01-17", Budget: "$900-1000", MoveInDate: "2024-01-25",
	},
	{
		ID:              5,
		Applicant:       model.Applicant{Name: "Emma Thompson", Avatar: "ET", University: "Harvard Medical School", Year: "Medical Student"},
		PropertyTitle:   "Luxury Downtown Loft",
		PropertyAddress: "89 Downtown Crossing, Boston, MA",
		Message:         "I'm a medical student looking for a high-quality living space. I have a stipend and can provide guarantor information if needed.",
		Status:          model.ApplicationPending,
		AppliedDate:     "2024-01-21", Budget: "$1800-2000", MoveInDate: "2024-02-10",
	},
}

func cloneListings(in []model.Listing) []model.Listing {
	out := make([]model.Listing, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}
