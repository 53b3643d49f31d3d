// Package gql holds the GraphQL documents sent to the form-builder backend.
package gql

// FormEditorQuestion loads a question by slug for editing. Number bounds are
// aliased per kind so integer and float questions do not collide.
const FormEditorQuestion = `
query FormEditorQuestion($slug: String!) {
  allQuestions(slug: $slug) {
    edges {
      node {
        id
        slug
        label
        description
        isRequired
        isHidden
        __typename
        ... on TextQuestion {
          maxLength
        }
        ... on TextareaQuestion {
          maxLength
        }
        ... on IntegerQuestion {
          integerMinValue: minValue
          integerMaxValue: maxValue
        }
        ... on FloatQuestion {
          floatMinValue: minValue
          floatMaxValue: maxValue
        }
        ... on CheckboxQuestion {
          options {
            edges {
              node {
                slug
                label
              }
            }
          }
        }
        ... on RadioQuestion {
          options {
            edges {
              node {
                slug
                label
              }
            }
          }
        }
      }
    }
  }
}
`

// CheckQuestionSlug looks up questions using a slug.
const CheckQuestionSlug = `
query CheckQuestionSlug($slug: String!) {
  allQuestions(slug: $slug) {
    edges {
      node {
        slug
      }
    }
  }
}
`

// SaveOption upserts an option by slug.
const SaveOption = `
mutation SaveOption($input: SaveOptionInput!) {
  saveOption(input: $input) {
    option {
      slug
      label
    }
    clientMutationId
  }
}
`

// AddFormQuestion attaches a question to a form.
const AddFormQuestion = `
mutation AddFormQuestion($input: AddFormQuestionInput!, $search: String) {
  addFormQuestion(input: $input) {
    form {
      slug
      questions(search: $search) {
        edges {
          node {
            slug
            label
          }
        }
      }
    }
    clientMutationId
  }
}
`

const questionFields = `
      slug
      label
      description
      isRequired
      isHidden
      __typename`

// SaveTextQuestion saves a text question.
const SaveTextQuestion = `
mutation SaveTextQuestion($input: SaveTextQuestionInput!) {
  saveTextQuestion(input: $input) {
    question {` + questionFields + `
      ... on TextQuestion {
        maxLength
      }
    }
    clientMutationId
  }
}
`

// SaveTextareaQuestion saves a textarea question.
const SaveTextareaQuestion = `
mutation SaveTextareaQuestion($input: SaveTextareaQuestionInput!) {
  saveTextareaQuestion(input: $input) {
    question {` + questionFields + `
      ... on TextareaQuestion {
        maxLength
      }
    }
    clientMutationId
  }
}
`

// SaveIntegerQuestion saves an integer question.
const SaveIntegerQuestion = `
mutation SaveIntegerQuestion($input: SaveIntegerQuestionInput!) {
  saveIntegerQuestion(input: $input) {
    question {` + questionFields + `
      ... on IntegerQuestion {
        integerMinValue: minValue
        integerMaxValue: maxValue
      }
    }
    clientMutationId
  }
}
`

// SaveFloatQuestion saves a float question.
const SaveFloatQuestion = `
mutation SaveFloatQuestion($input: SaveFloatQuestionInput!) {
  saveFloatQuestion(input: $input) {
    question {` + questionFields + `
      ... on FloatQuestion {
        floatMinValue: minValue
        floatMaxValue: maxValue
      }
    }
    clientMutationId
  }
}
`

// SaveCheckboxQuestion saves a checkbox question.
const SaveCheckboxQuestion = `
mutation SaveCheckboxQuestion($input: SaveCheckboxQuestionInput!) {
  saveCheckboxQuestion(input: $input) {
    question {` + questionFields + `
      ... on CheckboxQuestion {
        options {
          edges {
            node {
              slug
              label
            }
          }
        }
      }
    }
    clientMutationId
  }
}
`

// SaveRadioQuestion saves a radio question.
const SaveRadioQuestion = `
mutation SaveRadioQuestion($input: SaveRadioQuestionInput!) {
  saveRadioQuestion(input: $input) {
    question {` + questionFields + `
      ... on RadioQuestion {
        options {
          edges {
            node {
              slug
              label
            }
          }
        }
      }
    }
    clientMutationId
  }
}
`
