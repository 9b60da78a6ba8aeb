package college

import (
	"strconv"
	"strings"

	_ "embed"
)

// AssistantName is how the assistant labels its own messages in the chat pane.
const AssistantName = "JoSi"

//go:embed system_prompt.md
var systemPromptTemplate string

// Info holds the manually curated institution knowledge embedded into the
// system prompt. It is data, not configuration: the assistant serves one
// institution.
type Info struct {
	About            string
	Courses          []string
	PlacementHead    string
	PlacementEmail   string
	HighestPackage   int // in LPA
	LatestPlacements string
}

// Default returns the curated data for St. Xavier's College, Mumbai.
func Default() Info {
	return Info{
		About: "St. Xavier's College, Mumbai, is a leading institution offering a wide range of " +
			"undergraduate and postgraduate courses in Arts, Science, Commerce, and Management. " +
			"Known for its rich legacy and distinguished alumni, the college emphasizes " +
			"holistic student development.",
		Courses: []string{
			"Bachelor of Arts (B.A.)",
			"Bachelor of Science (B.Sc.)",
			"Bachelor of Commerce (B.Com.)",
			"Bachelor of Management Studies (BMS)",
			"Bachelor of Mass Media (BMM)",
			"M.A. in Public Policy",
			"M.Sc. in Biotechnology",
			"PhD Programs in select disciplines",
		},
		PlacementHead:  "Ms. Radhika Tendulkar",
		PlacementEmail: "radhika.tendulkar@xaviers.edu",
		HighestPackage: 24,
		LatestPlacements: "The 2023 placement season saw record participation from 55 companies, " +
			"with an average package of 8 LPA.",
	}
}

// SystemPrompt renders the fixed system instructions with the institution
// knowledge filled in.
func (i Info) SystemPrompt() string {
	prompt := systemPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{ABOUT}}", i.About)
	prompt = strings.ReplaceAll(prompt, "{{COURSES}}", strings.Join(i.Courses, ", "))
	prompt = strings.ReplaceAll(prompt, "{{HEAD}}", i.PlacementHead)
	prompt = strings.ReplaceAll(prompt, "{{EMAIL}}", i.PlacementEmail)
	prompt = strings.ReplaceAll(prompt, "{{HIGHEST}}", strconv.Itoa(i.HighestPackage))
	prompt = strings.ReplaceAll(prompt, "{{LATEST}}", i.LatestPlacements)
	return prompt
}
