/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/lpg-smoke/pkg/results"
)

var _ = Describe("Smoke Run", func() {
	Context("When the portal behaves canonically", func() {
		Describe("Given the default catalog", func() {
			It("should pass every case", func() {
				// Given: A freshly seeded portal
				// When: I run the whole catalog
				outcome := run()

				// Then: Every case passes
				Expect(outcome.Log.Failures()).To(BeEmpty())
				Expect(outcome.Summary.Total).To(Equal(23))
				Expect(outcome.Summary.AllPassed()).To(BeTrue())
				Expect(outcome.Summary.SuccessRate).NotTo(BeNil())
				Expect(*outcome.Summary.SuccessRate).To(BeNumerically("==", 100))

				// And: The console reports the totals
				Expect(output.String()).To(ContainSubstring("Testing API at: " + server.URL + "/api"))
				Expect(output.String()).To(ContainSubstring("Success Rate: 100.0%"))
			})

			It("should persist every result in execution order", func() {
				outcome := run()

				persistedResults := persisted()
				Expect(persistedResults).To(HaveLen(outcome.Log.Len()))

				for i, result := range outcome.Log.Results() {
					Expect(persistedResults[i]).To(HaveKeyWithValue("name", result.Name))
					Expect(persistedResults[i]).To(HaveKeyWithValue("success", true))
					Expect(persistedResults[i]).To(HaveKey("timestamp"))
					Expect(persistedResults[i]).To(HaveKey("response_data"))
				}
			})

			It("should observe the stock update in the returned record", func() {
				outcome := run()

				result := find(outcome.Log, "SPBE Update Stock")
				Expect(result.Success).To(BeTrue())

				body, ok := result.ResponseData.(map[string]any)
				Expect(ok).To(BeTrue())
				Expect(body).To(HaveKeyWithValue("success", true))
				Expect(body).To(HaveKeyWithValue("data", HaveKeyWithValue("stock", BeNumerically("==", 18000))))

				// And: The portal state reflects it
				spbe, err := portal.Store().GetSPBE("SPBE-001")
				Expect(err).NotTo(HaveOccurred())
				Expect(spbe.Stock).To(BeNumerically("==", 18000))
			})

			It("should treat the unknown SPBE as an expected 404", func() {
				outcome := run()

				result := find(outcome.Log, "SPBE Get Nonexistent")
				Expect(result.Success).To(BeTrue())
				Expect(result.Message).To(ContainSubstring("404"))
				Expect(result.ResponseData).To(HaveKeyWithValue("success", false))
				Expect(result.ResponseData).To(HaveKeyWithValue("message", ContainSubstring("not found")))
			})

			It("should place every result in exactly one category", func() {
				outcome := run()

				seen := 0

				for _, group := range results.Group(outcome.Log) {
					seen += group.Total()
				}

				Expect(seen).To(Equal(outcome.Log.Len()))
			})
		})

		Describe("Given an alert that is already resolved", func() {
			It("should still pass the resolve case", func() {
				_, err := portal.Store().ResolveAlert("ALT-001")
				Expect(err).NotTo(HaveOccurred())

				outcome := run()

				Expect(find(outcome.Log, "Alerts Resolve").Success).To(BeTrue())
			})
		})

		Describe("Given a subset of cases", func() {
			It("should only run the selected cases", func() {
				var err error

				catalog, err = catalog.Select("api_root", "invalid_endpoint")
				Expect(err).NotTo(HaveOccurred())

				outcome := run()

				Expect(outcome.Summary.Total).To(Equal(2))
				Expect(outcome.Log.Results()[0].Name).To(Equal("API Root"))
				Expect(outcome.Log.Results()[1].Name).To(Equal("Invalid Endpoint"))
			})
		})
	})

	Context("When the portal is failing", func() {
		Describe("Given every request answers 500", func() {
			It("should fail every case and keep going", func() {
				portal.SetFailStatus(http.StatusInternalServerError)

				outcome := run()

				Expect(outcome.Summary.Total).To(Equal(23))
				Expect(outcome.Summary.Passed).To(Equal(0))
				Expect(*outcome.Summary.SuccessRate).To(BeNumerically("==", 0))
				Expect(outcome.Summary.AllPassed()).To(BeFalse())

				Expect(find(outcome.Log, "API Root").Message).To(Equal("HTTP 500"))
				Expect(find(outcome.Log, "SPBE Get Nonexistent").Message).To(Equal("Expected 404, got HTTP 500"))

				Expect(output.String()).To(ContainSubstring("FAILED TESTS:"))
			})
		})

		Describe("Given the portal is unreachable", func() {
			It("should record transport failures without responses", func() {
				server.Close()

				outcome := run()

				Expect(outcome.Summary.Failed).To(Equal(23))

				root := find(outcome.Log, "API Root")
				Expect(root.Message).To(HavePrefix("Connection error: "))
				Expect(root.ResponseData).To(BeNil())

				Expect(find(outcome.Log, "SPBE Get All").Message).To(HavePrefix("Request error: "))

				// And: The log is still persisted
				Expect(persisted()).To(HaveLen(23))
			})
		})
	})
})
