package testplan

// Element tags.
const (
	tagRoot              = "jmeterTestPlan"
	tagHashTree          = "hashTree"
	tagTestPlan          = "TestPlan"
	tagFragment          = "TestFragmentController"
	tagController        = "GenericController"
	tagSampler           = "HTTPSamplerProxy"
	tagResponseAssertion = "ResponseAssertion"
	tagElementProp       = "elementProp"
	tagStringProp        = "stringProp"
	tagCollectionProp    = "collectionProp"
)

// GUI classes, the reader accepts an element by tag or by gui class.
const (
	guiTestPlan   = "TestPlanGui"
	guiFragment   = "TestFragmentControllerGui"
	guiController = "LogicControllerGui"
	guiSampler    = "HttpTestSampleGui"
	guiAssertion  = "AssertionGui"
	guiArguments  = "ArgumentsPanel"
	guiHTTPArgs   = "HTTPArgumentsPanel"
)

// Property names.
const (
	propPath           = "HTTPSampler.path"
	propMethod         = "HTTPSampler.method"
	propFollow         = "HTTPSampler.follow_redirects"
	propKeepAlive      = "HTTPSampler.use_keepalive"
	propPostBodyRaw    = "HTTPSampler.postBodyRaw"
	propArguments      = "HTTPsampler.Arguments"
	propArgumentList   = "Arguments.arguments"
	propArgumentName   = "Argument.name"
	propArgumentValue  = "Argument.value"
	propArgumentMeta   = "Argument.metadata"
	propAlwaysEncode   = "HTTPArgument.always_encode"
	propUseEquals      = "HTTPArgument.use_equals"
	propTestField      = "Assertion.test_field"
	propTestType       = "Assertion.test_type"
	propCustomMessage  = "Assertion.custom_message"
	propAssumeSuccess  = "Assertion.assume_success"
	propTestStrings    = "Assertion.test_strings"
	propUserVariables  = "TestPlan.user_defined_variables"
	propFunctionalMode = "TestPlan.functional_mode"
	propSerialize      = "TestPlan.serialize_threadgroups"

	// Misspelled as older JMeter versions write it, emitted alongside the correct spelling
	propTestStringsLegacy = "Asserion.test_strings"
)

// Fixed values.
const (
	// Version attributes of the root element.
	planVersion    = "1.2"
	planProperties = "5.0"
	planJMeter     = "5.6.3"

	fragmentName       = "Test Fragment"
	userVariablesName  = "User Defined Variables"
	elementHTTPArg     = "HTTPArgument"
	elementArguments   = "Arguments"
	responseCodeField  = "Assertion.response_code"
	statusOK           = "200"
	statusOKStringProp = "49586" // JMeter names the test string prop after the hash of its value
	equalsTestType     = 8

	// bodyKey is the argument name the reader gives an unnamed argument, it holds a raw body.
	bodyKey = "body"
)

// Defaults for missing attributes.
const (
	DefaultPlanName       = "Unnamed Test Plan"
	DefaultControllerName = "none"
	DefaultRequestName    = "Unnamed Request"
	DefaultMethod         = "GET"
	DefaultHostVariable   = "tests_url"
)
