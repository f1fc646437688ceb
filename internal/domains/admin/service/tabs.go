package service

import (
	cm "consulting-backend/internal/contentmanager"
	careers "consulting-backend/internal/domains/careers/model"
	contactinfo "consulting-backend/internal/domains/contactinfo/model"
)

// Resource names used by the admin tabs and the export endpoint.
const (
	ResourceLeads        = "contact"
	ResourceSubscribers  = "subscribers"
	ResourceBlog         = "blog"
	ResourceJobs         = "jobs"
	ResourceApplications = "applications"
	ResourceTestimonials = "testimonials"
	ResourceServices     = "services"
	ResourceTeam         = "team"
	ResourceContactInfo  = "contact-info"
)

// Tab is one admin panel section backed by a content manager.
type Tab struct {
	Resource string `json:"resource"`
	cm.Config
}

var tabs = []Tab{
	{Resource: ResourceLeads, Config: cm.Config{
		Title:        "Contact Leads",
		Endpoint:     "/api/contact",
		ListEndpoint: "/api/admin/contact",
		Schema: cm.Schema{
			cm.Text("name", "Name").Require(),
			cm.Email("email", "Email").Require(),
			cm.Text("subject", "Subject").Require(),
			cm.TextArea("message", "Message").Require(),
		},
		Display: []string{"name", "email", "subject", "createdAt"},
	}},
	{Resource: ResourceSubscribers, Config: cm.Config{
		Title:    "Newsletter Subscribers",
		Endpoint: "/api/newsletter/subscribers",
		Schema: cm.Schema{
			cm.Email("email", "Email").Require(),
			cm.Text("name", "Name"),
			cm.Boolean("isActive", "Active"),
		},
		Display: []string{"email", "name", "isActive", "subscribedAt"},
	}},
	{Resource: ResourceBlog, Config: cm.Config{
		Title:        "Blog Posts",
		Endpoint:     "/api/blog",
		ListEndpoint: "/api/admin/blog",
		Schema: cm.Schema{
			cm.Text("title", "Title").Require(),
			cm.Text("slug", "Slug"),
			cm.Text("author", "Author"),
			cm.TextArea("excerpt", "Excerpt"),
			cm.TextArea("content", "Content").Require(),
			cm.Text("tags", "Tags (comma separated)"),
			cm.Boolean("published", "Published"),
		},
		Display: []string{"title", "slug", "published", "createdAt"},
	}},
	{Resource: ResourceJobs, Config: cm.Config{
		Title:        "Job Postings",
		Endpoint:     "/api/jobs",
		ListEndpoint: "/api/admin/jobs",
		Schema: cm.Schema{
			cm.Text("title", "Title").Require(),
			cm.Text("department", "Department").Require(),
			cm.Text("location", "Location").Require(),
			cm.Select("type", "Type", cm.Choices(careers.JobTypes...)...).Require(),
			cm.TextArea("description", "Description").Require(),
			cm.TextArea("requirements", "Requirements").Require(),
			cm.TextArea("responsibilities", "Responsibilities").Require(),
			cm.Text("salary", "Salary"),
			cm.TextArea("benefits", "Benefits"),
			cm.Boolean("isActive", "Active"),
		},
		Display: []string{"title", "department", "type", "views", "applications"},
	}},
	{Resource: ResourceApplications, Config: cm.Config{
		Title:    "Job Applications",
		Endpoint: "/api/applications",
		NoCreate: true,
		Schema: cm.Schema{
			cm.Text("fullName", "Full name").Require(),
			cm.Email("email", "Email").Require(),
			cm.Text("phone", "Phone").Require(),
			cm.Text("position", "Position").Require(),
			cm.Text("department", "Department").Require(),
		},
		Display: []string{"fullName", "position", "status", "createdAt"},
	}},
	{Resource: ResourceTestimonials, Config: cm.Config{
		Title:        "Testimonials",
		Endpoint:     "/api/testimonials",
		ListEndpoint: "/api/admin/testimonials",
		Schema: cm.Schema{
			cm.Text("name", "Name").Require(),
			cm.Text("company", "Company").Require(),
			cm.Text("position", "Position").Require(),
			cm.TextArea("content", "Content").Require(),
			cm.Number("rating", "Rating (1-5)").Require(),
			cm.Text("service", "Service"),
			cm.URL("image", "Image URL"),
			cm.Boolean("isActive", "Active"),
		},
		Display: []string{"name", "company", "rating", "createdAt"},
	}},
	{Resource: ResourceServices, Config: cm.Config{
		Title:        "Services",
		Endpoint:     "/api/services",
		ListEndpoint: "/api/admin/services",
		Schema: cm.Schema{
			cm.Text("title", "Title").Require(),
			cm.Text("slug", "Slug"),
			cm.TextArea("summary", "Summary").Require(),
			cm.TextArea("description", "Description").Require(),
			cm.Text("icon", "Icon"),
			cm.Number("sortOrder", "Sort order"),
			cm.Boolean("isActive", "Active"),
		},
		Display: []string{"title", "slug", "sortOrder"},
	}},
	{Resource: ResourceTeam, Config: cm.Config{
		Title:        "Team",
		Endpoint:     "/api/team",
		ListEndpoint: "/api/admin/team",
		Schema: cm.Schema{
			cm.Text("name", "Name").Require(),
			cm.Text("role", "Role").Require(),
			cm.TextArea("bio", "Bio"),
			cm.Email("email", "Email"),
			cm.URL("linkedin", "LinkedIn"),
			cm.URL("image", "Image URL"),
			cm.Number("sortOrder", "Sort order"),
			cm.Boolean("isActive", "Active"),
		},
		Display: []string{"name", "role", "sortOrder"},
	}},
	{Resource: ResourceContactInfo, Config: cm.Config{
		Title:        "Contact Info",
		Endpoint:     "/api/contact-info",
		ListEndpoint: "/api/admin/contact-info",
		Schema: cm.Schema{
			cm.Select("type", "Type", cm.Choices(contactinfo.Types...)...).Require(),
			cm.Text("label", "Label").Require(),
			cm.Text("value", "Value").Require(),
			cm.Text("platform", "Platform"),
			cm.Text("icon", "Icon"),
			cm.Number("sortOrder", "Sort order"),
			cm.Boolean("isActive", "Active"),
		},
		Display: []string{"type", "label", "value", "sortOrder"},
	}},
}

// Tabs returns the static tab declarations in menu order.
func Tabs() []Tab {
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	return out
}

// LookupTab finds a tab by resource name.
func LookupTab(resource string) (Tab, bool) {
	for _, t := range tabs {
		if t.Resource == resource {
			return t, true
		}
	}
	return Tab{}, false
}

// NewManager builds a fresh content manager for a tab.
func (t Tab) NewManager(client cm.Client, notifier cm.Notifier) *cm.Manager {
	return cm.NewManager(t.Config, client, notifier)
}
