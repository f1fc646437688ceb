package service_test

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/admin/service"
	blog "consulting-backend/internal/domains/blog/model"
	careers "consulting-backend/internal/domains/careers/model"
	contactinfo "consulting-backend/internal/domains/contactinfo/model"
	lead "consulting-backend/internal/domains/lead/model"
	newsletter "consulting-backend/internal/domains/newsletter/model"
	offering "consulting-backend/internal/domains/offering/model"
	team "consulting-backend/internal/domains/team/model"
	testimonial "consulting-backend/internal/domains/testimonial/model"
)

func TestTabs_DisplayFieldsAndSchemasAreConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, tab := range service.Tabs() {
		assert.False(t, seen[tab.Resource], "duplicate tab %s", tab.Resource)
		seen[tab.Resource] = true

		assert.NotEmpty(t, tab.Title)
		assert.NotEmpty(t, tab.Endpoint)
		assert.NotEmpty(t, tab.Display, tab.Resource)
		require.NotEmpty(t, tab.Schema, tab.Resource)

		keys := map[string]bool{}
		for _, f := range tab.Schema {
			assert.False(t, keys[f.Key], "%s: duplicate field %s", tab.Resource, f.Key)
			keys[f.Key] = true
		}
	}

	_, ok := service.LookupTab(service.ResourceContactInfo)
	assert.True(t, ok)
	_, ok = service.LookupTab("orders")
	assert.False(t, ok)
}

// A field the API rejects when blank must be marked required in the form,
// otherwise a form that passes client-side checks still comes back 400.
func TestTabs_RequiredFieldsMatchServerValidation(t *testing.T) {
	blank := map[string]interface{ Validate() error }{
		service.ResourceLeads:        &lead.Lead{},
		service.ResourceSubscribers:  &newsletter.Subscriber{},
		service.ResourceBlog:         &blog.Post{},
		service.ResourceJobs:         &careers.Posting{},
		service.ResourceApplications: &careers.Application{},
		service.ResourceTestimonials: &testimonial.Testimonial{},
		service.ResourceServices:     &offering.Offering{},
		service.ResourceTeam:         &team.Member{},
		service.ResourceContactInfo:  &contactinfo.Item{},
	}
	// derived from the title when left blank
	derived := map[string]bool{"slug": true}

	for _, tab := range service.Tabs() {
		entity, ok := blank[tab.Resource]
		require.True(t, ok, "no entity for tab %s", tab.Resource)

		var errs validation.Errors
		require.True(t, errors.As(entity.Validate(), &errs), tab.Resource)

		for key := range errs {
			field, inForm := tab.Schema.Field(key)
			if !inForm || derived[key] {
				continue
			}
			assert.True(t, field.Required, "%s: %s is required by the API", tab.Resource, key)
		}
	}
}

func TestTabs_ApplicationsAreCreatedThroughCareersForm(t *testing.T) {
	tab, ok := service.LookupTab(service.ResourceApplications)
	require.True(t, ok)
	assert.True(t, tab.NoCreate)

	for _, other := range service.Tabs() {
		if other.Resource != service.ResourceApplications {
			assert.False(t, other.NoCreate, other.Resource)
		}
	}
}
