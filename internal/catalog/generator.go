package catalog

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"jobmate/dashboard-service/internal/model"
)

const (
	minSkillsPerJob = 3
	maxSkillsPerJob = 5
	maxPostedDays   = 10 // postedDaysAgo is drawn from [0, maxPostedDays)
)

var companies = []string{
	"Infosys", "TCS", "Wipro", "Accenture", "Capgemini", "Cognizant", "IBM", "Oracle", "SAP", "Dell",
	"Amazon", "Flipkart", "Swiggy", "Razorpay", "PhonePe", "Paytm", "Zoho", "Freshworks", "Juspay", "CRED",
	"Zerodha", "Groww", "Postman", "BrowserStack", "Zomato", "Meesho", "Urban Company", "Dream11",
}

var roles = []string{
	"SDE Intern", "Graduate Engineer Trainee", "Junior Backend Developer", "Frontend Intern",
	"QA Intern", "Data Analyst Intern", "Java Developer", "Python Developer", "React Developer",
	"Full Stack Engineer", "DevOps Engineer", "Product Analyst",
}

var skillsPool = []string{
	"Java", "Python", "React", "Node.js", "SQL", "AWS", "Docker", "Kubernetes", "Spring Boot",
	"TypeScript", "JavaScript", "C++", "Data Structures", "Algorithms", "System Design", "Figma",
}

// Generate builds size synthetic listings. The same non-zero seed always
// yields the same catalog; seed 0 picks a time-based seed.
func Generate(size int, seed int64) []model.Job {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	pick := func(n int) int { return rng.Intn(n) }

	jobs := make([]model.Job, 0, size)
	for i := 0; i < size; i++ {
		company := companies[pick(len(companies))]
		role := roles[pick(len(roles))]
		exp := experienceFor(role, rng)

		n := minSkillsPerJob + pick(maxSkillsPerJob-minSkillsPerJob+1)
		skills := make([]string, 0, n)
		seen := make(map[string]bool, n)
		for k := 0; k < n; k++ {
			s := skillsPool[pick(len(skillsPool))]
			if seen[s] {
				continue
			}
			seen[s] = true
			skills = append(skills, s)
		}

		jobs = append(jobs, model.Job{
			ID:            fmt.Sprintf("job-%d", i+1),
			Title:         role,
			Company:       company,
			Location:      model.Locations[pick(len(model.Locations))],
			Mode:          model.Modes[pick(len(model.Modes))],
			Experience:    exp,
			Skills:        skills,
			Source:        model.Sources[pick(len(model.Sources))],
			PostedDaysAgo: pick(maxPostedDays),
			SalaryRange:   salaryFor(exp, role),
			ApplyURL:      "#",
			Description:   describe(role, company),
		})
	}
	return jobs
}

func experienceFor(role string, rng *rand.Rand) model.Experience {
	switch {
	case strings.Contains(role, "Intern"):
		return model.ExperienceFresher
	case strings.Contains(role, "Trainee"), strings.Contains(role, "Junior"):
		return model.ExperienceZeroOne
	}
	r := rng.Float64()
	switch {
	case r < 0.3:
		return model.ExperienceOneThree
	case r < 0.6:
		return model.ExperienceThreeFive
	default:
		return model.ExperienceFivePlus
	}
}

func salaryFor(exp model.Experience, role string) string {
	switch {
	case strings.Contains(role, "Intern"):
		return "₹15k–₹40k/month"
	case exp == model.ExperienceFresher, exp == model.ExperienceZeroOne:
		return "₹3.5–₹8 LPA"
	case exp == model.ExperienceOneThree:
		return "₹8–₹16 LPA"
	default:
		return "₹16–₹28 LPA"
	}
}

func describe(role, company string) string {
	return fmt.Sprintf("We are looking for a passionate %s to join our team at %s. "+
		"You will be responsible for designing and implementing scalable software solutions. "+
		"Collaborate with cross-functional teams to define, design, and ship new features. "+
		"Work on bug fixing and improving application performance. "+
		"Continuously discover, evaluate, and implement new technologies to maximize development efficiency.",
		role, company)
}
