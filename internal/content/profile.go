package content

// Project is a portfolio entry on the landing page.
type Project struct {
	Title       string
	Description string
	Tech        []string
	Link        string
}

// Link is a contact channel.
type Link struct {
	Label string
	URL   string
}

// Profile is the static copy of the landing page.
type Profile struct {
	Name     string
	Title    string
	Tagline  []string
	About    []string
	Focus    string
	Skills   []string
	Projects []Project
	Contact  []Link
	Pitch    []string
}

// DefaultProfile returns the copy shown on the landing page.
func DefaultProfile() Profile {
	return Profile{
		Name:    "Lirik Rexhepi",
		Title:   "computer engineer",
		Tagline: []string{"full-stack software engineer", "crafting digital experiences", "and solving modern problems"},
		About: []string{
			"award winning software engineer with 5+ years of experience building scalable web applications and digital solutions.",
			"i thrive in competitive and fast paced environments, turning challenging and mind puzzling problems into modern digital solutions through minimalist design principles and clean code architecture.",
		},
		Focus:  "modern javascript frameworks / deep data understanding / ai integration",
		Skills: []string{"React", "Vue.js", "Php", "Laravel", "TailwindCSS", "MySQL", "Rest API", "Git"},
		Projects: []Project{
			{
				Title:       "Avaa Match",
				Description: "Recruitment platform that intelligently connects job seekers with employers through AI-powered matching.",
				Tech:        []string{"Laravel", "Tailwind", "MySQL", "Gemini AI"},
				Link:        "https://github.com/lirikrexhepi/aavaMatach",
			},
			{
				Title:       "Pupill",
				Description: "An LMS that turns grading, homework sharing, and teacher-parent communication into one digital experience.",
				Tech:        []string{"PhP", "Tailwind", "MySQL"},
				Link:        "https://github.com/lirikrexhepi/Pupill",
			},
			{
				Title:       "MathGPT",
				Description: "A math symbol toolbox integrated into ChatGPT for entering and formatting complex equations.",
				Tech:        []string{"JavaScript"},
				Link:        "https://github.com/lirikrexhepi/mathGPT",
			},
		},
		Contact: []Link{
			{Label: "mail", URL: "mailto:lirikrexhepi@gmail.com"},
			{Label: "github", URL: "https://github.com/lirikrexhepi/"},
			{Label: "linkedin", URL: "https://www.linkedin.com/in/lirik-rexhepi-700511240/"},
		},
		Pitch: []string{"open to discussing new opportunities", "interesting projects", "technology conversations"},
	}
}
