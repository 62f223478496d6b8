package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/frahmantamala/workforce-portal/pkg/optional"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOptional(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Optional Suite")
}

type patch struct {
	Task    optional.Field[string] `json:"task"`
	EndTime optional.Field[string] `json:"endTime"`
}

var _ = Describe("Field", func() {
	It("distinguishes absent, null and value", func() {
		var p patch
		Expect(json.Unmarshal([]byte(`{"endTime":null}`), &p)).To(Succeed())

		Expect(p.Task.Set).To(BeFalse())
		Expect(p.EndTime.Set).To(BeTrue())
		Expect(p.EndTime.Null).To(BeTrue())

		Expect(json.Unmarshal([]byte(`{"task":"review"}`), &p)).To(Succeed())
		Expect(p.Task.HasValue()).To(BeTrue())
		Expect(p.Task.Value).To(Equal("review"))
	})

	It("leaves destinations alone when unset", func() {
		current := "existing"
		var f optional.Field[string]
		f.Apply(&current)
		Expect(current).To(Equal("existing"))

		ptr := &current
		f.ApplyPtr(&ptr)
		Expect(ptr).NotTo(BeNil())
	})

	It("clears nullable destinations on null", func() {
		v := "x"
		ptr := &v
		optional.Null[string]().ApplyPtr(&ptr)
		Expect(ptr).To(BeNil())

		optional.Of("y").ApplyPtr(&ptr)
		Expect(*ptr).To(Equal("y"))
	})

	It("resets plain destinations to zero on null", func() {
		notes := "keep me"
		optional.Field[string]{}.ApplyOrZero(&notes)
		Expect(notes).To(Equal("keep me"))

		optional.Null[string]().ApplyOrZero(&notes)
		Expect(notes).To(BeEmpty())
	})

	It("rejects values of the wrong type", func() {
		var p patch
		Expect(json.Unmarshal([]byte(`{"task":12}`), &p)).NotTo(Succeed())
	})
})
