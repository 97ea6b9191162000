package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformUnknown    Platform = "unknown"
)

type platformRule struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description", ".job-post-content", "#content"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".content"},
		noise:    []string{".posting-apply", ".apply-section"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
		noise:    []string{"[data-automation-id='applyButton']"},
	},
	{
		platform: PlatformLinkedIn,
		hosts:    []string{"linkedin.com"},
		content:  []string{".show-more-less-html__markup", ".description__text", ".jobs-description"},
		noise:    []string{".sign-up-modal", ".contextual-sign-in-modal"},
	},
}

// noise shared by all job boards: apply forms, EEO blocks, share widgets
var commonNoise = []string{
	"form",
	".application-form",
	"#application-form",
	".eeo-statement",
	".voluntary-disclosure",
	".social-share",
	".cookie-consent",
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, rule := range platformRules {
		for _, h := range rule.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return rule.platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the description selectors for a platform,
// followed by the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	for _, rule := range platformRules {
		if rule.platform == platform {
			return append(append([]string{}, rule.content...), JobPostingSelectors()...)
		}
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the elements to strip for a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string{}, commonNoise...)
	for _, rule := range platformRules {
		if rule.platform == platform {
			noise = append(noise, rule.noise...)
		}
	}
	return noise
}
