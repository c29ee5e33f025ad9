package lsystem_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLSystem(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LSystem Suite")
}
