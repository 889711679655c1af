// Package fetch - platform.go provides platform detection and platform-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// platformProfile describes how to locate job posting content within a
// known job board's page structure.
type platformProfile struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

// commonNoiseSelectors are stripped from every posting regardless of platform.
var commonNoiseSelectors = []string{
	// Application forms
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",

	// EEO and legal
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",

	// Social and share buttons
	".social-share",
	".share-buttons",
	".social-links",

	// Cookie and GDPR
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// platformProfiles is ordered by how commonly each board shows up; the
// host lists cover the boards.* and jobs.* subdomains via suffix matching.
var platformProfiles = []platformProfile{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content: []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		},
		noise: []string{
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content: []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		},
		noise: []string{
			".apply-section",
			".lever-application-form",
			".posting-apply",
		},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content: []string{
			"[data-automation-id='jobDescription']",
			".WDXK",
			".gwt-HTML",
			".job-description",
		},
		noise: []string{
			"[data-automation-id='applyButton']",
			".application-section",
			".WDAF",
		},
	},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	for _, profile := range platformProfiles {
		for _, h := range profile.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return profile.platform
			}
		}
	}
	return PlatformUnknown
}

func profileFor(platform Platform) *platformProfile {
	for i := range platformProfiles {
		if platformProfiles[i].platform == platform {
			return &platformProfiles[i]
		}
	}
	return nil
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	profile := profileFor(platform)
	if profile == nil {
		return JobPostingSelectors()
	}
	return append([]string{}, profile.content...)
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string{}, commonNoiseSelectors...)
	if profile := profileFor(platform); profile != nil {
		noise = append(noise, profile.noise...)
	}
	return noise
}
