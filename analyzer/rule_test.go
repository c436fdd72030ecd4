package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/objguard/analyzer"
	"github.com/viant/objguard/inspector/ast"
	"github.com/viant/objguard/inspector/javascript"
)

type finding struct {
	Line    int
	Message string
}

// recorder is a minimal host: scope resolution over a parsed file plus collected reports
type recorder struct {
	scopes   *ast.ScopeTree
	findings []finding
}

func (r *recorder) ScopeOf(node ast.Node) *ast.Scope {
	return r.scopes.ScopeOf(node)
}

func (r *recorder) Report(node ast.Node, message string) {
	r.findings = append(r.findings, finding{Line: node.Span().Start.Line, Message: message})
}

func lint(t *testing.T, rule *analyzer.Rule, code string, options ...string) []finding {
	t.Helper()
	file, err := javascript.NewInspector(nil).InspectSource(context.Background(), "test.js", []byte(code))
	require.NoError(t, err)
	rec := &recorder{scopes: file.Scopes}
	visitor, err := rule.Create(rec, options)
	require.NoError(t, err)
	ast.Inspect(file.Program, func(n ast.Node) bool {
		if handler, ok := visitor[n.Kind()]; ok {
			handler(n)
		}
		return true
	})
	return rec.findings
}

func messages(findings []finding) []string {
	var result []string
	for _, f := range findings {
		result = append(result, f.Message)
	}
	return result
}

const thisReceiver = `
somePromise
  .then(() => {
    this.set('prop1', true);
  })
  .catch(() => {
    this.set('prop2', true);
  })
  .finally(() => {
    this.set('prop3', false);
  });
`

const unguarded = `
somePromise
  .then(() => {
    obj.set('prop1', true);
  })
  .catch(() => {
    obj.set('prop2', true);
  })
  .finally(() => {
    obj.set('prop3', false);
  });
`

const inlineGuards = `
somePromise
  .then(() => {
    if(!obj.isDestroying) {
      obj.set('prop1', true);
    }
  })
  .catch(() => {
    if(!obj.isDestroying) {
      if(someOtherCondition()) {
        if(someOtherNestedCondition) {
          obj.set('prop2', true);
        }
      }
    }
  })
  .finally(() => {
    if(someOtherCondition()) {
      if(!obj.isDestroying) {
        if(someOtherNestedCondition) {
          obj.set('prop2', true);
        }
      }
    }
  });
`

const utilityGuards = `
somePromise
  .then(() => {
    if(!isRemoved(obj)) {
      obj.set('prop1', true);
    }
  })
  .catch(() => {
    if(isAlive(obj)) {
      if(someOtherCondition()) {
        if(someOtherNestedCondition) {
          obj.set('prop2', true);
        }
      }
    }
  })
  .finally(() => {
    if(someOtherCondition()) {
      if(!isMarkedForDelete(obj)) {
        if(someOtherNestedCondition) {
          obj.set('prop2', true);
        }
      }
    }
  });
`

const unrelatedGuards = `
somePromise
  .then(() => {
    obj.set('prop1', true);
  })
  .catch(() => {
    if(someOtherCondition()) {
      if(someOtherNestedCondition) {
        obj.set('prop2', true);
      }
    }
  })
  .finally(() => {
    if(someOtherCondition()) {
      if(someOtherNestedCondition) {
        obj.set('prop2', true);
      }
    }
  });
`

const compoundGuards = `
somePromise
  .then(() => {
    if (someOtherCondition() && isAlive(obj)) {
      obj.set('prop1', true);
    }
  })
  .catch(() => {
    if (someOtherCondition() && isAlive(obj)) {
      obj.set('prop2', true);
    }
  })
  .finally(() => {
    if (someOtherCondition() && isAlive(obj)) {
      obj.set('prop3', false);
    }
  });
`

func TestNoObjectUpdate(t *testing.T) {
	guardMessage := analyzer.GuardMessage("obj", nil)
	utilityMessage := "Use the utility method(s) 'isAlive' OR 'isRemoved' to verify the 'obj' is not being destroyed before calling 'obj.set(...)'"

	var testCases = []struct {
		description string
		code        string
		options     []string
		expect      []string
	}{
		{description: "this receiver", code: thisReceiver},
		{description: "inline isDestroying guards at any depth", code: inlineGuards},
		{
			description: "configured utility guards",
			code:        utilityGuards,
			options:     []string{"isAlive", "isRemoved", "isMarkedForDelete"},
		},
		{
			description: "unguarded calls in then, catch and finally",
			code:        unguarded,
			expect:      []string{guardMessage, guardMessage, guardMessage},
		},
		{
			description: "utility guards without configuration",
			code:        utilityGuards,
			expect:      []string{guardMessage, guardMessage, guardMessage},
		},
		{
			description: "unrelated conditions with utilities configured",
			code:        unrelatedGuards,
			options:     []string{"isAlive", "isRemoved"},
			expect:      []string{utilityMessage, utilityMessage, utilityMessage},
		},
		{
			description: "guard polarity and operator are ignored",
			code:        compoundGuards,
			options:     []string{"isAlive", "isRemoved"},
		},
		{
			description: "utility not configured",
			code:        compoundGuards,
			options:     []string{"isRemoved"},
			expect: []string{
				analyzer.GuardMessage("obj", []string{"isRemoved"}),
				analyzer.GuardMessage("obj", []string{"isRemoved"}),
				analyzer.GuardMessage("obj", []string{"isRemoved"}),
			},
		},
		{
			description: "bare set call",
			code:        `p.then(() => { set('a', 1); });`,
		},
		{
			description: "concise arrow body",
			code:        `p.then(() => obj.set('a', 1));`,
			expect:      []string{guardMessage},
		},
		{
			description: "function expression callback",
			code:        `p.then(function () { obj.set('a', 1); });`,
			expect:      []string{guardMessage},
		},
		{
			description: "not a continuation",
			code:        `items.forEach(() => { obj.set('a', 1); });`,
		},
		{
			description: "nested function inside continuation",
			code:        `p.then(() => { items.forEach((item) => { item.set('a', 1); }); });`,
		},
		{
			description: "guard outside the callback does not count",
			code:        `if (!obj.isDestroying) { p.then(() => { obj.set('a', 1); }); }`,
			expect:      []string{guardMessage},
		},
		{
			description: "guard on another object",
			code:        `p.then(() => { if (!other.isDestroying) { obj.set('a', 1); } });`,
			expect:      []string{guardMessage},
		},
		{
			description: "member receiver guarded",
			code:        `p.then(() => { if (!this.model.isDestroying) { this.model.set('a', 1); } });`,
		},
		{
			description: "member receiver unguarded",
			code:        `p.then(() => { this.model.set('a', 1); });`,
			expect:      []string{analyzer.GuardMessage("this.model", nil)},
		},
		{
			description: "call receiver guarded by the same call",
			code:        `p.then(() => { if (!getObj().isDestroying) { getObj().set('x', 1); } });`,
		},
		{
			description: "unrenderable receiver is never guarded",
			code:        `p.then(() => { if (!a[0].isDestroying) { a[0].set('x', 1); } });`,
			expect:      []string{analyzer.GuardMessage(analyzer.DefaultObjectName, nil)},
		},
		{
			description: "utility with member argument",
			code:        `p.then(() => { if (isAlive(this.model)) { this.model.set('a', 1); } });`,
			options:     []string{"isAlive"},
		},
		{
			description: "namespaced utility",
			code:        `p.then(() => { if (Ember.isAlive(obj)) { obj.set('a', 1); } });`,
			options:     []string{"isAlive"},
		},
		{
			description: "guard without braces is not a scope",
			code:        `p.then(() => { if (!obj.isDestroying) obj.set('a', 1); });`,
			expect:      []string{guardMessage},
		},
		{
			description: "one finding per call site",
			code:        `p.then(() => { obj.set('a', 1); obj.set('b', 2); });`,
			expect:      []string{guardMessage, guardMessage},
		},
		{
			description: "set read without call",
			code:        `p.then(() => { const fn = obj.set; });`,
			expect:      []string{guardMessage},
		},
		{
			description: "set as receiver",
			code:        `p.then(() => { set.foo(1); });`,
			expect:      []string{analyzer.GuardMessage("set", nil)},
		},
		{
			description: "set as computed key",
			code:        `p.then(() => { obj[set] = 1; });`,
			expect:      []string{guardMessage},
		},
		{
			description: "computed then",
			code:        `p['then'](() => { obj.set('a', 1); });`,
		},
		{
			description: "top level",
			code:        `obj.set('a', 1);`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			findings := lint(t, analyzer.NoObjectUpdate, testCase.code, testCase.options...)
			assert.EqualValues(t, testCase.expect, messages(findings))
		})
	}
}

func TestNoObjectUpdate_FindingPositions(t *testing.T) {
	findings := lint(t, analyzer.NoObjectUpdate, unguarded)
	require.Len(t, findings, 3)
	assert.Equal(t, 4, findings[0].Line)
	assert.Equal(t, 7, findings[1].Line)
	assert.Equal(t, 10, findings[2].Line)
}

func TestNoPromiseHookUpdate(t *testing.T) {
	message := analyzer.PromiseHookMessage("obj")

	var testCases = []struct {
		description string
		code        string
		expect      []string
	}{
		{description: "this receiver", code: thisReceiver},
		{description: "unguarded", code: unguarded, expect: []string{message, message, message}},
		{description: "guards are not recognised", code: inlineGuards, expect: []string{message, message, message}},
		{description: "bare set call", code: `p.finally(() => set(1));`},
		{description: "not a continuation", code: `setTimeout(() => obj.set('a', 1));`},
		{description: "set as receiver", code: `p.then(() => { set.foo(1); });`, expect: []string{analyzer.PromiseHookMessage("set")}},
		{description: "set as computed key", code: `p.then(() => { obj[set] = 1; });`, expect: []string{message}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			findings := lint(t, analyzer.NoPromiseHookUpdate, testCase.code)
			assert.EqualValues(t, testCase.expect, messages(findings))
		})
	}
}

func TestRule_Create(t *testing.T) {
	var testCases = []struct {
		description string
		rule        *analyzer.Rule
		options     []string
		expectErr   bool
	}{
		{description: "guarded without options", rule: analyzer.NoObjectUpdate},
		{description: "guarded with options", rule: analyzer.NoObjectUpdate, options: []string{"isAlive", "isAlive"}},
		{description: "invalid utility name", rule: analyzer.NoObjectUpdate, options: []string{"is alive"}, expectErr: true},
		{description: "unguarded rejects options", rule: analyzer.NoPromiseHookUpdate, options: []string{"isAlive"}, expectErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			visitor, err := testCase.rule.Create(&recorder{scopes: ast.NewScopeTree()}, testCase.options)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, visitor, 1)
			assert.NotNil(t, visitor[ast.KindIdentifier])
		})
	}
}

func TestRules(t *testing.T) {
	rule, ok := analyzer.Lookup(analyzer.NoObjectUpdateID)
	require.True(t, ok)
	assert.True(t, rule.Guarded())
	assert.Equal(t, "Check '!obj.isDestroying' to verify the 'obj' is not being destroyed before calling 'obj.set(...)'", rule.Meta.Message)

	rule, ok = analyzer.Lookup(analyzer.NoPromiseHookUpdateID)
	require.True(t, ok)
	assert.False(t, rule.Guarded())
	assert.Equal(t, "Please wrap 'obj.set' in 'isAlive(obj)'", rule.Meta.Message)

	_, ok = analyzer.Lookup("no-such-rule")
	assert.False(t, ok)
	assert.Len(t, analyzer.Rules(), 2)
}
